package immediate

import "github.com/go-drift/immediate/pkg/retained"

// LayoutElement overrides the layout of a single widget. Nil sizes keep the
// backend's value.
type LayoutElement = retained.Layout

// Size returns a pointer to v, for LayoutElement fields.
func Size(v float32) *float32 {
	return &v
}

// Preferred returns a LayoutElement with the given preferred size.
// Negative values leave that axis unset.
func Preferred(width, height float32) LayoutElement {
	var le LayoutElement
	if width >= 0 {
		le.PreferredWidth = Size(width)
	}
	if height >= 0 {
		le.PreferredHeight = Size(height)
	}
	return le
}

// Flexible returns a LayoutElement with the given flexible weights.
// Negative values leave that axis unset.
func Flexible(width, height float32) LayoutElement {
	var le LayoutElement
	if width >= 0 {
		le.FlexibleWidth = Size(width)
	}
	if height >= 0 {
		le.FlexibleHeight = Size(height)
	}
	return le
}

// SetNextLayoutElement decorates the next widget call. The widget applies le
// instead of its default layout and the override is consumed. Setting a new
// override before one is consumed drops the old one, and overrides never
// outlive the pass they were set in.
func (b *Builder) SetNextLayoutElement(le LayoutElement) {
	b.nextLayout = &le
}

// takeLayout consumes the pending override, or returns defaults.
func (b *Builder) takeLayout(defaults LayoutElement) LayoutElement {
	if b.nextLayout == nil {
		return defaults
	}
	le := *b.nextLayout
	b.nextLayout = nil
	return le
}

// checkNextLayout applies a pending override to an existing widget. Widgets
// without a retained element drop it.
func (b *Builder) checkNextLayout(n *node) {
	if b.nextLayout == nil {
		return
	}
	le := *b.nextLayout
	b.nextLayout = nil
	if n.handle != retained.None {
		b.backend.SetProp(n.handle, retained.PropLayout, le)
	}
}
