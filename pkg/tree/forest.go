package tree

import (
	"github.com/textoc/textoc/pkg/models"
)

// Node is a single notebook in the forest.
type Node struct {
	Notebook *models.Notebook

	// Hierarchy
	Parent   *Node
	Children []*Node
}

// Forest is an arena of notebook nodes keyed by id. It is rebuilt from the
// flat notebook rows on every refresh; rows pointing at a missing parent
// are treated as roots rather than dropped.
type Forest struct {
	nodes map[string]*Node
	roots []*Node
}

// Build constructs a forest from flat notebook rows, preserving the input
// order for roots and child lists.
func Build(notebooks []*models.Notebook) *Forest {
	f := &Forest{nodes: make(map[string]*Node, len(notebooks))}

	for _, nb := range notebooks {
		f.nodes[nb.ID] = &Node{Notebook: nb}
	}

	for _, nb := range notebooks {
		node := f.nodes[nb.ID]
		if parent, ok := f.nodes[nb.ParentID]; ok && nb.ParentID != nb.ID {
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		} else {
			f.roots = append(f.roots, node)
		}
	}

	return f
}

// Get returns the node for a notebook id, or nil.
func (f *Forest) Get(id string) *Node {
	return f.nodes[id]
}

// Roots returns the root nodes in input order.
func (f *Forest) Roots() []*Node {
	return f.roots
}

// Children returns the direct children of a notebook, or nil if the id is
// unknown.
func (f *Forest) Children(id string) []*Node {
	if node := f.nodes[id]; node != nil {
		return node.Children
	}
	return nil
}

// Descendants returns every notebook id below the given one, transitively,
// not including the notebook itself.
func (f *Forest) Descendants(id string) []string {
	node := f.nodes[id]
	if node == nil {
		return nil
	}

	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			out = append(out, child.Notebook.ID)
			walk(child)
		}
	}
	walk(node)
	return out
}

// WouldCycle reports whether reparenting id under newParent would
// introduce a cycle. Moving a notebook under itself or under any of its
// descendants is a cycle; moving to the root (empty parent) never is.
func (f *Forest) WouldCycle(id, newParent string) bool {
	if newParent == "" {
		return false
	}
	if id == newParent {
		return true
	}

	// Walk up from the proposed parent; if we reach id, the move would
	// close a loop.
	for node := f.nodes[newParent]; node != nil; node = node.Parent {
		if node.Notebook.ID == id {
			return true
		}
	}
	return false
}

// Flatten returns a depth-first ordering of all notebook ids, the order a
// sidebar renders them in.
func (f *Forest) Flatten() []string {
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.Notebook.ID)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range f.roots {
		walk(root)
	}
	return out
}
