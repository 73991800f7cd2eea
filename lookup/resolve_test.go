package lookup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/token"
)

type testScope struct{ node *construct.Node }

func (s *testScope) Node() *construct.Node { return s.node }

func newTestScope(t *testing.T) *testScope {
	t.Helper()
	s := &testScope{}
	n, err := construct.NewNode(s, nil, "")
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	s.node = n
	return s
}

func childCount(s *testScope) int { return len(s.node.Children()) }

// mappingBody renders the single mapping under scope for inspection.
func mappingBody(t *testing.T, s *testScope, identity string) map[string]any {
	t.Helper()
	child := s.node.FindChild(identity)
	if child == nil {
		t.Fatalf("no construct %q in scope", identity)
	}
	m, ok := child.(*cfn.Mapping)
	if !ok {
		t.Fatalf("construct %q is %T, not a mapping", identity, child)
	}
	tmpl := cfn.NewTemplate()
	if err := m.AddToTemplate(tmpl); err != nil {
		t.Fatalf("render mapping: %v", err)
	}
	return tmpl.Mappings[identity].(map[string]any)
}

func TestResolveDefaultOnEmptyMap(t *testing.T) {
	s := newTestScope(t)
	got, err := Resolve(s, "X", nil, WithDefault("D"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "D" {
		t.Errorf("got %q, want literal default", got)
	}
	if token.IsUnresolved(got) {
		t.Error("default must be returned verbatim, not deferred")
	}
	if childCount(s) != 0 {
		t.Error("no table may be created for the default path")
	}
}

func TestResolveEmptyMapNoDefault(t *testing.T) {
	s := newTestScope(t)
	_, err := Resolve(s, "X", map[string]string{})
	if err == nil {
		t.Fatal("expected MissingFactError")
	}
	var missing *MissingFactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFactError, got %T", err)
	}
	if missing.Fact != "X" {
		t.Errorf("error names fact %q, want X", missing.Fact)
	}
}

func TestResolveCollapsesUniformPattern(t *testing.T) {
	s := newTestScope(t)
	values := map[string]string{
		"a": "svc.a.example",
		"b": "svc.b.example",
	}
	subs := func(key string) []Substitution {
		return []Substitution{
			{Name: "domainSuffix", Value: "example", Token: token.URLSuffix},
			{Name: "region", Value: key, Token: token.Region},
		}
	}
	got, err := Resolve(s, "svcUrl", values, WithSubstitutions(subs))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := "svc." + token.Region + "." + token.URLSuffix
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if childCount(s) != 0 {
		t.Error("collapse must not create a table construct")
	}
}

func TestResolveMaterializesMapping(t *testing.T) {
	s := newTestScope(t)
	values := map[string]string{"a": "urlA", "b": "urlB"}
	got, err := Resolve(s, "widget:alpha", values)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	body := mappingBody(t, s, "WidgetMap")
	want := map[string]any{
		"a": map[string]any{"alpha": "urlA"},
		"b": map[string]any{"alpha": "urlB"},
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("mapping rows mismatch (-want +got):\n%s", diff)
	}

	resolved, err := token.Resolve(got)
	if err != nil {
		t.Fatalf("resolve expression: %v", err)
	}
	wantExpr := map[string]any{"Fn::FindInMap": []any{
		"WidgetMap",
		map[string]any{"Ref": "AWS::Region"},
		"alpha",
	}}
	if diff := cmp.Diff(wantExpr, resolved); diff != "" {
		t.Errorf("lookup expression mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSharesMappingAcrossParams(t *testing.T) {
	s := newTestScope(t)
	if _, err := Resolve(s, "Widget:alpha", map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if _, err := Resolve(s, "Widget:beta", map[string]string{"a": "3", "b": "4"}); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if childCount(s) != 1 {
		t.Fatalf("expected exactly one table construct, got %d", childCount(s))
	}
	body := mappingBody(t, s, "WidgetMap")
	want := map[string]any{
		"a": map[string]any{"alpha": "1", "beta": "3"},
		"b": map[string]any{"alpha": "2", "beta": "4"},
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("shared mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSingleEntryNeverCreatesTable(t *testing.T) {
	s := newTestScope(t)
	got, err := Resolve(s, "X", map[string]string{"only": "value"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "value" {
		t.Errorf("got %q", got)
	}
	if childCount(s) != 0 {
		t.Error("single-entry map must collapse, never materialize")
	}
}

func TestResolveIdempotentAcrossCalls(t *testing.T) {
	s := newTestScope(t)
	if _, err := Resolve(s, "widget:alpha", map[string]string{"a": "old", "b": "urlB"}); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if _, err := Resolve(s, "widget:alpha", map[string]string{"a": "new", "b": "urlB"}); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if childCount(s) != 1 {
		t.Fatalf("expected one table after re-resolution, got %d", childCount(s))
	}
	body := mappingBody(t, s, "WidgetMap")
	if body["a"].(map[string]any)["alpha"] != "new" {
		t.Errorf("second call's value must win: %v", body["a"])
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	s := newTestScope(t)
	// Occupy the identity with a non-mapping construct.
	if _, err := cfn.NewResource(s, "WidgetMap", "AWS::SNS::Topic", nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	_, err := Resolve(s, "widget:alpha", map[string]string{"a": "1", "b": "2"})
	if err == nil {
		t.Fatal("expected TypeMismatchError")
	}
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *TypeMismatchError, got %T: %v", err, err)
	}
	if mismatch.Identity != "WidgetMap" {
		t.Errorf("identity = %q", mismatch.Identity)
	}
}

func TestResolveCustomDiscriminator(t *testing.T) {
	s := newTestScope(t)
	disc := token.Partition
	got, err := Resolve(s, "widget:alpha", map[string]string{"a": "1", "b": "2"},
		WithDiscriminator(disc))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	resolved, err := token.Resolve(got)
	if err != nil {
		t.Fatalf("resolve expr: %v", err)
	}
	args := resolved.(map[string]any)["Fn::FindInMap"].([]any)
	if diff := cmp.Diff(map[string]any{"Ref": "AWS::Partition"}, args[1]); diff != "" {
		t.Errorf("discriminator mismatch (-want +got):\n%s", diff)
	}
}
