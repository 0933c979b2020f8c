package jsast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/repolens/core/pkg/parser/tspool"
)

// NodeText returns the source text for the given AST node. Bounds are
// validated before touching tree-sitter's C layer; out-of-range nodes yield
// an empty string.
func NodeText(node *sitter.Node, source []byte) (result string) {
	if node == nil {
		return ""
	}

	start := node.StartByte()
	end := node.EndByte()
	if start > uint32(len(source)) || end > uint32(len(source)) {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// Line returns the 1-based start line of a node.
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// FindChildByType returns the first direct child with the given node type.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// FindChildrenByType returns all direct children with the given node type.
func FindChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var children []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			children = append(children, child)
		}
	}
	return children
}

// walk visits every node in the subtree until the visitor returns false or
// the depth guard trips.
func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	walkDepth(node, visit, 0)
}

func walkDepth(node *sitter.Node, visit func(*sitter.Node) bool, depth int) {
	if node == nil || depth > tspool.MaxTreeDepth {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkDepth(node.Child(i), visit, depth+1)
	}
}

// hasDescendantOfType reports whether the subtree contains a node of any of
// the given types.
func hasDescendantOfType(node *sitter.Node, types ...string) bool {
	found := false
	walk(node, func(n *sitter.Node) bool {
		for _, t := range types {
			if n.Type() == t {
				found = true
				return false
			}
		}
		return !found
	})
	return found
}
