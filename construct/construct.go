// Package construct provides the tree of named nodes that templates are
// synthesized from. Every template element, stack, and app owns a Node; the
// node records identity, parentage, and ordered children, and is the scope
// against which find-or-create lookups run.
package construct

import (
	"fmt"
	"strings"
)

// Construct is anything hosted on a tree node.
type Construct interface {
	Node() *Node
}

// Validator is implemented by constructs that can check their own
// configuration before synthesis.
type Validator interface {
	Validate() error
}

// Node is one vertex of the construct tree.
type Node struct {
	id       string
	parent   *Node
	host     Construct
	children map[string]*Node
	order    []string
}

// NewNode attaches a node for host under scope. A nil scope creates a root
// node. IDs must be unique among the scope's direct children.
func NewNode(host Construct, scope Construct, id string) (*Node, error) {
	if id == "" && scope != nil {
		return nil, fmt.Errorf("construct ID cannot be empty")
	}
	if strings.Contains(id, "/") {
		return nil, fmt.Errorf("construct ID %q cannot contain '/'", id)
	}
	n := &Node{id: id, host: host, children: map[string]*Node{}}
	if scope == nil {
		return n, nil
	}
	parent := scope.Node()
	if _, exists := parent.children[id]; exists {
		return nil, fmt.Errorf("there is already a construct with ID %q in scope %q", id, parent.Path())
	}
	n.parent = parent
	parent.children[id] = n
	parent.order = append(parent.order, id)
	return n, nil
}

// ID returns the node's ID within its scope.
func (n *Node) ID() string { return n.id }

// Host returns the construct this node belongs to.
func (n *Node) Host() Construct { return n.host }

// Parent returns the parent construct, or nil for a root.
func (n *Node) Parent() Construct {
	if n.parent == nil {
		return nil
	}
	return n.parent.host
}

// Path returns the slash-joined IDs from the root (exclusive) to this node.
func (n *Node) Path() string {
	return strings.Join(n.PathSegments(), "/")
}

// PathSegments returns the IDs from the root (exclusive) down to this node.
func (n *Node) PathSegments() []string {
	var segs []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		segs = append(segs, cur.id)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}

// FindChild returns the direct child with the given ID, or nil.
func (n *Node) FindChild(id string) Construct {
	child, ok := n.children[id]
	if !ok {
		return nil
	}
	return child.host
}

// Children returns the direct children in attachment order.
func (n *Node) Children() []Construct {
	out := make([]Construct, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.children[id].host)
	}
	return out
}

// Root returns the root construct of the tree containing this node.
func (n *Node) Root() Construct {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.host
}

// Walk visits this node's construct and every descendant, depth-first in
// attachment order.
func (n *Node) Walk(fn func(Construct)) {
	fn(n.host)
	for _, id := range n.order {
		n.children[id].Walk(fn)
	}
}
