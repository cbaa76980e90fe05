package immediate

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-drift/immediate/pkg/retained"
)

// unnamed is the identity given to nodes whose position is their only key.
const unnamed = "Undefined"

// equal compares cached values. NaN equals NaN so that pushing the same
// value twice stays a no-op.
func equal(a, b any) bool {
	return cmp.Equal(a, b, cmpopts.EquateNaNs())
}

// node is one reconciled widget slot. It exclusively owns its retained handle
// and its children; parent is a back-reference used only to flag structural
// changes.
type node struct {
	backend retained.Backend

	kind   Kind
	name   string
	handle retained.Handle
	// borrowed handles belong to the caller (the surface) and are never destroyed.
	borrowed bool

	value  any
	dirty  bool
	mask   Flags
	extra  []any
	update func(any)

	// control is the child element some widgets update outside updateValue.
	control retained.Handle

	parent   *node
	children []*node
	// cursor is -1 while the node is not being traversed.
	cursor  int
	rebuilt bool
}

func newNode(backend retained.Backend, parent *node) *node {
	return &node{backend: backend, parent: parent, cursor: -1}
}

// needsRebuild reports whether the node must construct a new retained handle
// for (name, kind). On a mismatch the node is cleared and takes the new
// identity.
func (n *node) needsRebuild(name string, kind Kind) bool {
	if n.name == name && n.kind == kind {
		return false
	}
	n.rebuild(name, kind)
	return true
}

// needsRebuildKind is needsRebuild for nodes identified by position alone.
func (n *node) needsRebuildKind(kind Kind) bool {
	if n.kind == kind {
		return false
	}
	n.rebuild(unnamed, kind)
	return true
}

func (n *node) rebuild(name string, kind Kind) {
	n.clear()
	n.name = name
	n.kind = kind
	if n.parent != nil {
		n.parent.rebuilt = true
	}
}

// setExtra stores v at index and reports whether it differs from the value
// previously stored there.
func (n *node) setExtra(index int, v any) bool {
	if index < len(n.extra) && equal(n.extra[index], v) {
		return false
	}
	for index >= len(n.extra) {
		n.extra = append(n.extra, nil)
	}
	n.extra[index] = v
	return true
}

// updateValue pushes v to the retained control unless the user edited it
// since the last pass or v equals the cached value. Dirty is always cleared.
func (n *node) updateValue(v any) {
	if !n.dirty && v != nil && (n.value == nil || !equal(n.value, v)) {
		if n.update != nil {
			n.update(v)
		}
		n.value = v
	}
	n.dirty = false
}

// commit records a user edit coming from the retained control.
func (n *node) commit(v any) {
	n.value = v
	n.dirty = true
}

// clear releases the retained handle and every child, depth first, and
// resets the node to a blank slot. Calling clear twice is harmless.
func (n *node) clear() {
	for _, c := range n.children {
		c.clear()
	}
	n.children = nil
	n.cursor = -1
	n.rebuilt = false

	if !n.borrowed {
		if n.handle != retained.None {
			n.backend.DestroyNode(n.handle)
		}
		n.handle = retained.None
		n.kind = KindNone
		n.name = ""
	}

	n.update = nil
	n.control = retained.None
	n.extra = nil
	n.value = nil
	n.dirty = false
	n.mask = FlagNone
}

// NodeInfo is a read-only snapshot of a cache node.
type NodeInfo struct {
	Kind     Kind
	Name     string
	Handle   retained.Handle
	Value    any
	Dirty    bool
	Children []NodeInfo
}

func (n *node) info() NodeInfo {
	info := NodeInfo{
		Kind:   n.kind,
		Name:   n.name,
		Handle: n.handle,
		Value:  n.value,
		Dirty:  n.dirty,
	}
	for _, c := range n.children {
		info.Children = append(info.Children, c.info())
	}
	return info
}
