package construct

import (
	"errors"
	"strings"
	"testing"
)

// plain is a minimal construct for tree tests.
type plain struct {
	node *Node
	err  error
}

func newPlain(t *testing.T, scope Construct, id string) *plain {
	t.Helper()
	p := &plain{}
	n, err := NewNode(p, scope, id)
	if err != nil {
		t.Fatalf("NewNode(%q): %v", id, err)
	}
	p.node = n
	return p
}

func (p *plain) Node() *Node { return p.node }
func (p *plain) Validate() error {
	return p.err
}

func newRoot(t *testing.T) *plain {
	t.Helper()
	p := &plain{}
	n, err := NewNode(p, nil, "")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	p.node = n
	return p
}

func TestPathAndFindChild(t *testing.T) {
	root := newRoot(t)
	a := newPlain(t, root, "A")
	b := newPlain(t, a, "B")

	if got := b.Node().Path(); got != "A/B" {
		t.Errorf("path = %q, want A/B", got)
	}
	if root.Node().FindChild("A") != Construct(a) {
		t.Error("FindChild(A) did not return a")
	}
	if root.Node().FindChild("B") != nil {
		t.Error("FindChild is scoped to direct children")
	}
	if b.Node().Root() != Construct(root) {
		t.Error("Root() did not return the tree root")
	}
}

func TestDuplicateChildIDRejected(t *testing.T) {
	root := newRoot(t)
	newPlain(t, root, "Dup")
	p := &plain{}
	if _, err := NewNode(p, root, "Dup"); err == nil {
		t.Fatal("expected duplicate ID error")
	}
}

func TestChildrenPreserveAttachmentOrder(t *testing.T) {
	root := newRoot(t)
	for _, id := range []string{"z", "a", "m"} {
		newPlain(t, root, id)
	}
	var got []string
	for _, c := range root.Node().Children() {
		got = append(got, c.Node().ID())
	}
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children order = %v, want %v", got, want)
		}
	}
}

func TestLogicalIDTopLevel(t *testing.T) {
	root := newRoot(t)
	a := newPlain(t, root, "My-Table.1")
	if got := LogicalID(a); got != "MyTable1" {
		t.Errorf("LogicalID = %q, want MyTable1", got)
	}
}

func TestLogicalIDNestedGetsDigestSuffix(t *testing.T) {
	root := newRoot(t)
	a := newPlain(t, root, "Svc")
	b := newPlain(t, a, "Role")
	id := LogicalID(b)
	if !strings.HasPrefix(id, "SvcRole") {
		t.Errorf("LogicalID = %q, want SvcRole prefix", id)
	}
	if len(id) != len("SvcRole")+8 {
		t.Errorf("expected 8-char digest suffix, got %q", id)
	}
	// Deterministic across calls.
	if LogicalID(b) != id {
		t.Error("LogicalID not deterministic")
	}
}

type rootStack struct{ plain }

func (r *rootStack) IsTemplateRoot() bool { return true }

func TestLogicalIDRelativeToTemplateRoot(t *testing.T) {
	root := newRoot(t)
	st := &rootStack{}
	n, err := NewNode(st, root, "MyStack")
	if err != nil {
		t.Fatalf("stack node: %v", err)
	}
	st.node = n
	el := newPlain(t, st, "Widget-Map")
	if got := LogicalID(el); got != "WidgetMap" {
		t.Errorf("LogicalID = %q, want WidgetMap (stack name must not leak in)", got)
	}
}

func TestLogicalIDDistinctPathsDiffer(t *testing.T) {
	root := newRoot(t)
	a := newPlain(t, root, "A")
	b := newPlain(t, root, "AB")
	x := newPlain(t, a, "BX")
	y := newPlain(t, b, "X")
	// Both sanitize to "ABX"; the digest suffix must keep them apart.
	if LogicalID(x) == LogicalID(y) {
		t.Errorf("collision: %q", LogicalID(x))
	}
}

func TestLogicalIDLengthCap(t *testing.T) {
	root := newRoot(t)
	long := strings.Repeat("x", 300)
	a := newPlain(t, root, "Scope")
	b := newPlain(t, a, long)
	if got := LogicalID(b); len(got) > 255 {
		t.Errorf("logical ID exceeds 255 chars: %d", len(got))
	}
}

func TestValidateTreeAggregates(t *testing.T) {
	root := newRoot(t)
	a := newPlain(t, root, "A")
	a.err = errors.New("bad a")
	b := newPlain(t, root, "B")
	b.err = errors.New("bad b")
	newPlain(t, root, "C")

	err := ValidateTree(root)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "A: bad a") || !strings.Contains(msg, "B: bad b") {
		t.Errorf("missing failures in %q", msg)
	}
}

func TestValidateTreeCleanIsNil(t *testing.T) {
	root := newRoot(t)
	newPlain(t, root, "A")
	if err := ValidateTree(root); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestRenderTreeAndModel(t *testing.T) {
	root := newRoot(t)
	a := newPlain(t, root, "Stack")
	newPlain(t, a, "Role")

	out := RenderTree(root)
	if !strings.Contains(out, "Stack") || !strings.Contains(out, "Role") {
		t.Errorf("render missing nodes:\n%s", out)
	}

	model := TreeModel(root)
	stack, ok := model.Children["Stack"]
	if !ok {
		t.Fatal("model missing Stack")
	}
	if _, ok := stack.Children["Role"]; !ok {
		t.Error("model missing Stack/Role")
	}
	if stack.Path != "Stack" {
		t.Errorf("path = %q", stack.Path)
	}
}
