package immediate

import "github.com/go-drift/immediate/pkg/retained"

// beginNested starts a traversal of the node's children.
func (n *node) beginNested() {
	n.rebuilt = false
	n.cursor = 0
}

// currentNested returns the child at the cursor, appending blank children
// until one exists. It returns nil when the node is not being traversed.
func (n *node) currentNested() *node {
	if n.cursor < 0 {
		return nil
	}
	for n.cursor >= len(n.children) {
		n.children = append(n.children, newNode(n.backend, n))
	}
	return n.children[n.cursor]
}

// nextNested advances the cursor past the current child.
func (n *node) nextNested() {
	if n.cursor < 0 {
		return
	}
	n.cursor++
}

// endNested trims children that were not visited during this traversal and,
// if any child was rebuilt, restores the sibling order of the retained
// children to the call order.
func (n *node) endNested() {
	if n.cursor < 0 {
		return
	}
	if n.cursor < len(n.children) {
		for _, stale := range n.children[n.cursor:] {
			stale.clear()
		}
		clear(n.children[n.cursor:])
		n.children = n.children[:n.cursor]
	}

	if n.rebuilt && n.handle != retained.None {
		for i := len(n.children) - 1; i >= 0; i-- {
			if h := n.children[i].handle; h != retained.None {
				n.backend.Reparent(h, n.handle, 0)
			}
		}
	}
	n.rebuilt = false
	n.cursor = -1
}
