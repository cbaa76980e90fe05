package immediate

import (
	stderrors "errors"

	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/retained"
	"github.com/go-drift/immediate/pkg/theme"
)

// Builder reconciles immediate-mode draw calls against a retained backend.
// A Builder is confined to the goroutine that runs its frames.
type Builder struct {
	backend retained.Backend
	parent  retained.Handle
	overlay retained.Handle
	theme   *theme.Theme

	root  *node
	stack stack

	changeCount int
	nextLayout  *LayoutElement
}

// Option configures a Builder.
type Option func(*Builder)

// WithTheme sets the theme used for sizes and text measurement.
func WithTheme(t *theme.Theme) Option {
	return func(b *Builder) {
		if t != nil {
			b.theme = t
		}
	}
}

// WithOverlayParent sets the element dropdowns open their item lists under.
// It defaults to the builder's parent.
func WithOverlayParent(h retained.Handle) Option {
	return func(b *Builder) {
		b.overlay = h
	}
}

// New creates a builder that patches the children of parent.
func New(backend retained.Backend, parent retained.Handle, opts ...Option) *Builder {
	b := &Builder{
		backend:     backend,
		parent:      parent,
		overlay:     parent,
		theme:       theme.Default(),
		changeCount: -1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parent returns the surface the builder patches.
func (b *Builder) Parent() retained.Handle {
	return b.parent
}

// Theme returns the builder's theme.
func (b *Builder) Theme() *theme.Theme {
	return b.theme
}

// Root returns the handle of the first top-level widget, or None.
func (b *Builder) Root() retained.Handle {
	if b.root == nil || len(b.root.children) == 0 {
		return retained.None
	}
	return b.root.children[0].handle
}

// IsRefreshing reports whether a pass is running. Values reaching change
// listeners during a pass come from the builder itself and are not edits.
func (b *Builder) IsRefreshing() bool {
	return b.stack.len() > 0
}

// Inspect returns a snapshot of the cache tree. The root node stands for the
// surface.
func (b *Builder) Inspect() NodeInfo {
	if b.root == nil {
		return NodeInfo{Handle: b.parent}
	}
	return b.root.info()
}

func (b *Builder) rootNode() *node {
	if b.root != nil {
		return b.root
	}
	// The cache starts empty, so anything already under the surface is stale.
	for _, h := range b.backend.Children(b.parent) {
		b.backend.DestroyNode(h)
	}
	b.root = newNode(b.backend, nil)
	b.root.handle = b.parent
	b.root.borrowed = true
	return b.root
}

// Frame runs one reconciliation pass. Every widget call made by draw is
// matched against the previous pass; widgets not called again are destroyed.
// An error returned by draw, or a panic inside it, leaves the cache balanced
// and is returned as an *errors.CallbackError.
func (b *Builder) Frame(draw func() error) error {
	if b.IsRefreshing() {
		err := &errors.UIError{
			Op:   "immediate.Frame",
			Kind: errors.KindStructure,
			Err:  stderrors.New("Frame called during a pass"),
		}
		errors.Report(err)
		return err
	}
	if f, ok := b.backend.(retained.Flusher); ok {
		f.Flush()
	}
	err := b.nest(b.rootNode(), draw)
	b.nextLayout = nil
	return err
}

// Dispose destroys every retained element the builder created.
func (b *Builder) Dispose() {
	if b.root != nil {
		b.root.clear()
		b.root = nil
	}
	b.stack = stack{}
	b.nextLayout = nil
	if f, ok := b.backend.(retained.Flusher); ok {
		f.Flush()
	}
}

// nest traverses container n with draw as its body and closes it, whatever
// draw does.
func (b *Builder) nest(n *node, draw func() error) error {
	b.stack.push(n)
	n.beginNested()

	err := b.call(n, draw)

	b.stack.unwindTo(n)
	if b.stack.peek() == n {
		n.endNested()
		b.stack.pop()
	}

	if err == nil {
		return nil
	}
	var cbErr *errors.CallbackError
	if stderrors.As(err, &cbErr) {
		return err
	}
	return &errors.CallbackError{Container: containerName(n), Err: err}
}

func (b *Builder) call(n *node, draw func() error) (err error) {
	if draw == nil {
		return nil
	}
	defer errors.RecoverInto("immediate."+containerName(n), &err)
	return draw()
}

func containerName(n *node) string {
	if n.kind == KindNone {
		return "frame"
	}
	return n.kind.String()
}

// nextField returns the node for the next call in the current container,
// or nil when called outside a pass.
func (b *Builder) nextField() *node {
	top := b.stack.peek()
	if top == nil {
		errors.Report(&errors.UIError{
			Op:   "immediate.nextField",
			Kind: errors.KindStructure,
			Err:  stderrors.New("widget call outside Frame"),
		})
		return nil
	}
	n := top.currentNested()
	top.nextNested()
	return n
}

// currentParent returns the retained handle new widgets are created under.
func (b *Builder) currentParent() retained.Handle {
	if top := b.stack.peek(); top != nil {
		return top.handle
	}
	return b.parent
}

// topLevel reports whether the next call lands directly under the surface.
func (b *Builder) topLevel() bool {
	return b.stack.len() == 1
}
