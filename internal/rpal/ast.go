package rpal

import "strings"

// Node is a tree node shared by the AST (pre-standardization) and the
// standardized tree: both forms use the same label/children shape, with the
// standardizer relabeling and rewiring children of existing nodes in place
// rather than building a distinct tree type. A node's depth is not stored;
// the renderer threads it down the walk instead.
type Node struct {
	Label    string
	Children []*Node
}

func newNode(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// RenderTree renders n in the preorder, depth-dotted notation of spec.md
// section 6: each line is N copies of prefix followed by the node's label,
// where N is the node's depth (0 at the root).
func RenderTree(n *Node, prefix string) string {
	var sb strings.Builder
	renderTree(n, 0, prefix, &sb)
	return sb.String()
}

func renderTree(n *Node, depth int, prefix string, sb *strings.Builder) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat(prefix, depth))
	sb.WriteString(n.Label)
	sb.WriteByte('\n')
	for _, child := range n.Children {
		renderTree(child, depth+1, prefix, sb)
	}
}

// idLabel builds the tagged label for an identifier leaf, e.g. <ID:foo>.
func idLabel(name string) string { return "<ID:" + name + ">" }

// intLabel builds the tagged label for an integer leaf, e.g. <INT:5>.
func intLabel(digits string) string { return "<INT:" + digits + ">" }

// strLabel builds the tagged label for a string leaf, e.g. <STR:'hi'>.
func strLabel(quoted string) string { return "<STR:" + quoted + ">" }
