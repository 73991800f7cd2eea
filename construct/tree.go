package construct

import (
	"github.com/xlab/treeprint"
)

// RenderTree produces a human-readable rendering of the subtree rooted at c.
func RenderTree(c Construct) string {
	root := treeprint.NewWithRoot(displayName(c))
	addBranches(root, c)
	return root.String()
}

func displayName(c Construct) string {
	id := c.Node().ID()
	if id == "" {
		return "App"
	}
	return id
}

func addBranches(branch treeprint.Tree, c Construct) {
	for _, child := range c.Node().Children() {
		addBranches(branch.AddBranch(displayName(child)), child)
	}
}

// TreeNode is the serializable form of a construct subtree, written to the
// assembly as tree.json.
type TreeNode struct {
	ID       string              `json:"id"`
	Path     string              `json:"path"`
	Children map[string]TreeNode `json:"children,omitempty"`
}

// TreeModel builds the serializable tree for the subtree rooted at c.
func TreeModel(c Construct) TreeNode {
	n := c.Node()
	out := TreeNode{ID: n.ID(), Path: n.Path()}
	children := n.Children()
	if len(children) > 0 {
		out.Children = make(map[string]TreeNode, len(children))
		for _, child := range children {
			out.Children[child.Node().ID()] = TreeModel(child)
		}
	}
	return out
}
