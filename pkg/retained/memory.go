package retained

import (
	"fmt"
	"slices"

	"github.com/go-drift/immediate/pkg/errors"
)

// MemoryNode is one element of a Memory backend.
type MemoryNode struct {
	Handle       Handle
	Parent       Handle
	Children     []Handle
	Spec         Spec
	Value        any
	Text         string
	FontSize     int
	Image        string
	Items        []string
	Layout       Layout
	Interactable bool
	Valid        bool

	listeners []Listener
	pending   bool
}

// Memory is an in-memory Backend. Destruction is deferred: DestroyNode
// detaches the element at once and Flush releases it.
//
// SetValue notifies listeners with an EventChange, the way engine widgets
// report programmatic edits. Memory is not safe for concurrent use.
type Memory struct {
	nodes     map[Handle]*MemoryNode
	nextID    Handle
	pending   []Handle
	destroyed []Handle
	created   int
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		nodes: make(map[Handle]*MemoryNode),
	}
}

// NewSurface creates a parentless element that callers hand to a builder as
// its parent.
func (m *Memory) NewSurface(name string) Handle {
	return m.CreateNode(None, Spec{Role: RoleSurface, Name: name})
}

func (m *Memory) report(op string, err error) {
	errors.Report(&errors.UIError{
		Op:         "retained." + op,
		Kind:       errors.KindBackend,
		Err:        err,
		StackTrace: errors.CaptureStack(),
	})
}

// live returns the node for h if it exists and is not pending destruction.
func (m *Memory) live(op string, h Handle) (*MemoryNode, bool) {
	n, ok := m.nodes[h]
	if !ok {
		m.report(op, fmt.Errorf("unknown handle %d", h))
		return nil, false
	}
	if n.pending {
		m.report(op, fmt.Errorf("handle %d is being destroyed", h))
		return nil, false
	}
	return n, true
}

func (m *Memory) CreateNode(parent Handle, spec Spec) Handle {
	m.nextID++
	h := m.nextID
	n := &MemoryNode{
		Handle:       h,
		Spec:         spec,
		Value:        spec.Value,
		Text:         spec.Text,
		FontSize:     spec.FontSize,
		Image:        spec.Image,
		Items:        slices.Clone(spec.Items),
		Layout:       spec.Layout,
		Interactable: !spec.Disabled,
		Valid:        true,
	}
	m.nodes[h] = n
	m.created++
	if parent != None {
		if p, ok := m.live("CreateNode", parent); ok {
			n.Parent = parent
			p.Children = append(p.Children, h)
		}
	}
	return h
}

func (m *Memory) DestroyNode(h Handle) {
	n, ok := m.nodes[h]
	if !ok {
		m.report("DestroyNode", fmt.Errorf("unknown handle %d", h))
		return
	}
	if n.pending {
		return
	}
	m.detach(n)
	m.markPending(n)
	m.pending = append(m.pending, h)
}

func (m *Memory) markPending(n *MemoryNode) {
	n.pending = true
	n.listeners = nil
	for _, c := range n.Children {
		if child, ok := m.nodes[c]; ok {
			m.markPending(child)
		}
	}
}

func (m *Memory) detach(n *MemoryNode) {
	if n.Parent == None {
		return
	}
	if p, ok := m.nodes[n.Parent]; ok {
		if i := slices.Index(p.Children, n.Handle); i >= 0 {
			p.Children = slices.Delete(p.Children, i, i+1)
		}
	}
	n.Parent = None
}

// Flush releases every element whose destruction is pending.
func (m *Memory) Flush() {
	pending := m.pending
	m.pending = nil
	for _, h := range pending {
		m.release(h)
	}
}

func (m *Memory) release(h Handle) {
	n, ok := m.nodes[h]
	if !ok {
		return
	}
	for _, c := range n.Children {
		m.release(c)
	}
	delete(m.nodes, h)
	m.destroyed = append(m.destroyed, h)
}

func (m *Memory) SetValue(h Handle, value any) {
	n, ok := m.live("SetValue", h)
	if !ok {
		return
	}
	n.Value = value
	m.notify(n, Event{Kind: EventChange, Handle: h, Value: value})
}

func (m *Memory) SetProp(h Handle, prop Prop, value any) {
	n, ok := m.live("SetProp", h)
	if !ok {
		return
	}
	var typeOK bool
	switch prop {
	case PropName:
		n.Spec.Name, typeOK = value.(string)
	case PropText:
		n.Text, typeOK = value.(string)
	case PropFontSize:
		n.FontSize, typeOK = value.(int)
	case PropImage:
		n.Image, typeOK = value.(string)
	case PropInteractable:
		n.Interactable, typeOK = value.(bool)
	case PropValid:
		n.Valid, typeOK = value.(bool)
	case PropLayout:
		var l Layout
		l, typeOK = value.(Layout)
		n.Layout = l.Apply(n.Layout)
	case PropItems:
		var items []string
		items, typeOK = value.([]string)
		n.Items = slices.Clone(items)
	}
	if !typeOK {
		m.report("SetProp", fmt.Errorf("property %s does not accept %T", prop, value))
	}
}

func (m *Memory) RegisterChangeListener(h Handle, fn Listener) {
	n, ok := m.live("RegisterChangeListener", h)
	if !ok || fn == nil {
		return
	}
	n.listeners = append(n.listeners, fn)
}

func (m *Memory) Reparent(h, parent Handle, sibling int) {
	n, ok := m.live("Reparent", h)
	if !ok {
		return
	}
	p, ok := m.live("Reparent", parent)
	if !ok {
		return
	}
	m.detach(n)
	sibling = max(0, min(sibling, len(p.Children)))
	p.Children = slices.Insert(p.Children, sibling, h)
	n.Parent = parent
}

func (m *Memory) Children(h Handle) []Handle {
	n, ok := m.nodes[h]
	if !ok {
		return nil
	}
	return slices.Clone(n.Children)
}

func (m *Memory) notify(n *MemoryNode, ev Event) {
	// Listeners may destroy or edit the node; iterate over a snapshot.
	for _, fn := range slices.Clone(n.listeners) {
		fn(ev)
	}
}

// Input simulates the user editing a control: the value is stored and
// listeners receive an EventChange.
func (m *Memory) Input(h Handle, value any) {
	m.SetValue(h, value)
}

// Type simulates a keystroke that leaves text in an input.
func (m *Memory) Type(h Handle, text string) {
	m.Input(h, text)
}

// Submit simulates finishing an edit with the given text.
func (m *Memory) Submit(h Handle, text string) {
	n, ok := m.live("Submit", h)
	if !ok {
		return
	}
	n.Value = text
	m.notify(n, Event{Kind: EventChange, Handle: h, Value: text})
	m.notify(n, Event{Kind: EventSubmit, Handle: h, Value: text})
}

// SetMask simulates ticking items of a mask dropdown.
func (m *Memory) SetMask(h Handle, mask uint64) {
	m.Input(h, mask)
}

// Press simulates a button click. Non-interactable buttons ignore it.
func (m *Memory) Press(h Handle) {
	n, ok := m.live("Press", h)
	if !ok || !n.Interactable {
		return
	}
	m.notify(n, Event{Kind: EventPress, Handle: h})
}

// Select simulates picking a dropdown item.
func (m *Memory) Select(h Handle, index int) {
	n, ok := m.live("Select", h)
	if !ok {
		return
	}
	n.Value = index
	m.notify(n, Event{Kind: EventSelect, Handle: h, Value: index})
}

// Node returns the element for h. Elements pending destruction are returned
// until Flush releases them.
func (m *Memory) Node(h Handle) (*MemoryNode, bool) {
	n, ok := m.nodes[h]
	return n, ok
}

// Alive reports whether h exists and is not pending destruction.
func (m *Memory) Alive(h Handle) bool {
	n, ok := m.nodes[h]
	return ok && !n.pending
}

// Find returns the oldest live element with the given name, or None.
func (m *Memory) Find(name string) Handle {
	for h := Handle(1); h <= m.nextID; h++ {
		if n, ok := m.nodes[h]; ok && !n.pending && n.Spec.Name == name {
			return h
		}
	}
	return None
}

// FindIn returns the first live descendant of root with the given name in
// depth-first sibling order, or None.
func (m *Memory) FindIn(root Handle, name string) Handle {
	n, ok := m.nodes[root]
	if !ok {
		return None
	}
	for _, c := range n.Children {
		child, ok := m.nodes[c]
		if !ok || child.pending {
			continue
		}
		if child.Spec.Name == name {
			return c
		}
		if found := m.FindIn(c, name); found != None {
			return found
		}
	}
	return None
}

// FindRole returns the first live descendant of root with the given role.
func (m *Memory) FindRole(root Handle, role Role) Handle {
	n, ok := m.nodes[root]
	if !ok {
		return None
	}
	for _, c := range n.Children {
		child, ok := m.nodes[c]
		if !ok || child.pending {
			continue
		}
		if child.Spec.Role == role {
			return c
		}
		if found := m.FindRole(c, role); found != None {
			return found
		}
	}
	return None
}

// Destroyed returns the handles released by Flush so far, in release order.
func (m *Memory) Destroyed() []Handle {
	return slices.Clone(m.destroyed)
}

// Pending returns the number of destructions waiting for Flush.
func (m *Memory) Pending() int {
	return len(m.pending)
}

// Created returns the number of elements created so far.
func (m *Memory) Created() int {
	return m.created
}

// Len returns the number of elements not yet released.
func (m *Memory) Len() int {
	return len(m.nodes)
}
