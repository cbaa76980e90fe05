package immediate

import (
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/retained"
	"github.com/go-drift/immediate/pkg/theme"
)

const (
	verticalSpacing   = 2
	horizontalSpacing = 4
	lineHeight        = 2
)

// VerticalLayout stacks the widgets drawn by draw from top to bottom.
func (b *Builder) VerticalLayout(draw func() error) error {
	n := b.openLayout(KindVerticalLayout)
	if n == nil {
		return nil
	}
	return b.nest(n, draw)
}

// HorizontalLayout lines up the widgets drawn by draw from left to right.
func (b *Builder) HorizontalLayout(draw func() error) error {
	n := b.openLayout(KindHorizontalLayout)
	if n == nil {
		return nil
	}
	return b.nest(n, draw)
}

// BeginVerticalLayout opens a vertical layout that stays open until the
// matching EndVerticalLayout.
func (b *Builder) BeginVerticalLayout() {
	b.beginLayout(KindVerticalLayout)
}

// EndVerticalLayout closes the innermost open vertical layout.
func (b *Builder) EndVerticalLayout() {
	b.endLayout(KindVerticalLayout)
}

// BeginHorizontalLayout opens a horizontal layout that stays open until the
// matching EndHorizontalLayout.
func (b *Builder) BeginHorizontalLayout() {
	b.beginLayout(KindHorizontalLayout)
}

// EndHorizontalLayout closes the innermost open horizontal layout.
func (b *Builder) EndHorizontalLayout() {
	b.endLayout(KindHorizontalLayout)
}

func (b *Builder) beginLayout(kind Kind) {
	n := b.openLayout(kind)
	if n == nil {
		return
	}
	b.stack.push(n)
	n.beginNested()
}

// endLayout pops containers until one of the given kind is closed. Other
// containers found on the way are reported and closed. The root is never
// popped.
func (b *Builder) endLayout(kind Kind) {
	for b.stack.len() > 1 {
		top := b.stack.peek()
		if top.kind == kind {
			top.endNested()
			b.stack.pop()
			return
		}
		b.stack.forcePop(kind)
	}
	errors.ReportStructure(&errors.StructureError{Container: kind.String(), Unmatched: true})
}

func (b *Builder) openLayout(kind Kind) *node {
	n := b.nextField()
	if n == nil {
		return nil
	}
	if !n.needsRebuildKind(kind) {
		b.checkNextLayout(n)
		return n
	}

	spec := retained.Spec{
		Role:    retained.RoleVerticalLayout,
		Name:    "VerticalLayout",
		Spacing: verticalSpacing,
	}
	if kind == KindHorizontalLayout {
		spec.Role = retained.RoleHorizontalLayout
		spec.Name = "HorizontalLayout"
		spec.Spacing = horizontalSpacing
	}
	if b.topLevel() {
		spec.FitContent = true
		spec.Padding = b.theme.SurfacePadding
		spec.Layout = b.takeLayout(LayoutElement{})
	} else {
		spec.Layout = b.takeLayout(Preferred(b.theme.FontSizeWithMargins(), -1))
	}
	n.handle = b.backend.CreateNode(b.currentParent(), spec)
	return n
}

// Label draws text at the theme's font size.
func (b *Builder) Label(text string) {
	b.LabelSized(text, 0)
}

// Title draws text at the theme's title size.
func (b *Builder) Title(text string) {
	b.LabelSized(text, b.theme.TitleFontSize)
}

// LabelSized draws text at the given font size. Zero means the theme's size.
func (b *Builder) LabelSized(text string, size int) {
	n := b.nextField()
	if n == nil {
		return
	}
	fontSize := b.theme.FontSizeOr(size)
	if n.needsRebuildKind(KindLabel) {
		n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
			Role:     retained.RoleText,
			Name:     "Title " + text,
			Text:     text,
			FontSize: fontSize,
			Layout:   b.takeLayout(LayoutElement{}),
		})
		n.setExtra(0, text)
		n.setExtra(1, size)
		return
	}

	// Both extras must be stored, so no short-circuit.
	textChanged := n.setExtra(0, text)
	sizeChanged := n.setExtra(1, size)
	if textChanged {
		b.backend.SetProp(n.handle, retained.PropName, "Title "+text)
	}
	if textChanged || sizeChanged {
		b.backend.SetProp(n.handle, retained.PropText, text)
		b.backend.SetProp(n.handle, retained.PropFontSize, fontSize)
	}
	b.checkNextLayout(n)
}

// Separator draws empty space, spaces lines high.
func (b *Builder) Separator(spaces int) {
	n := b.nextField()
	if n == nil {
		return
	}
	if n.needsRebuildKind(KindSeparator) {
		n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
			Role:   retained.RoleSeparator,
			Name:   "Separator",
			Layout: b.takeLayout(b.separatorLayout(spaces)),
		})
		n.setExtra(0, spaces)
		return
	}
	if n.setExtra(0, spaces) {
		b.backend.SetProp(n.handle, retained.PropLayout, b.takeLayout(b.separatorLayout(spaces)))
	}
	b.checkNextLayout(n)
}

func (b *Builder) separatorLayout(spaces int) LayoutElement {
	le := Preferred(-1, float32(spaces)*b.theme.FontSizeWithMargins())
	le.FlexibleWidth = Size(1)
	return le
}

// LineSeparator draws a thin horizontal rule.
func (b *Builder) LineSeparator() {
	n := b.nextField()
	if n == nil {
		return
	}
	if n.needsRebuild("LineSeparator", KindLineSeparator) {
		n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
			Role:   retained.RoleLine,
			Name:   "LineSeparator",
			Layout: b.takeLayout(Preferred(-1, lineHeight)),
		})
		return
	}
	b.checkNextLayout(n)
}

// FlexibleSpace fills the space left in the enclosing layout.
func (b *Builder) FlexibleSpace() {
	n := b.nextField()
	if n == nil {
		return
	}
	if n.needsRebuild("Spacer", KindSpacer) {
		n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
			Role:   retained.RoleSpacer,
			Name:   "Spacer",
			Layout: b.takeLayout(Flexible(1, 1)),
		})
		return
	}
	b.checkNextLayout(n)
}

// Button draws a text button and reports whether it was pressed since the
// previous pass. A press counts as an edit for the change check.
func (b *Builder) Button(text string, flags Flags) bool {
	n := b.nextField()
	if n == nil {
		return false
	}
	if n.needsRebuildKind(KindButtonText) {
		n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
			Role:     retained.RoleButton,
			Name:     "Button " + text,
			Text:     text,
			Layout:   b.takeLayout(b.buttonLayout(text)),
			Disabled: flags&FlagNoInteractable != 0,
		})
		n.mask = flags
		n.setExtra(0, text)
		b.listenPress(n)
	} else if n.setExtra(0, text) {
		b.backend.SetProp(n.handle, retained.PropName, "Button "+text)
		b.backend.SetProp(n.handle, retained.PropText, text)
		b.backend.SetProp(n.handle, retained.PropLayout, b.takeLayout(b.buttonLayout(text)))
	}
	return b.finishButton(n, flags)
}

// ImageButton draws a button showing the named image. The image name is the
// button's identity: drawing a different image rebuilds it.
func (b *Builder) ImageButton(image string, flags Flags) bool {
	n := b.nextField()
	if n == nil {
		return false
	}
	if n.needsRebuild(image, KindButtonImage) {
		fsm := b.theme.FontSizeWithMargins()
		n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
			Role:     retained.RoleButton,
			Name:     "Button " + image,
			Image:    image,
			Layout:   b.takeLayout(LayoutElement{MinWidth: Size(fsm), MinHeight: Size(fsm)}),
			Disabled: flags&FlagNoInteractable != 0,
		})
		n.mask = flags
		b.listenPress(n)
	}
	return b.finishButton(n, flags)
}

func (b *Builder) buttonLayout(text string) LayoutElement {
	width := b.theme.Resources().MeasureText(theme.FontContent, b.theme.FontSize, text)
	return LayoutElement{
		PreferredWidth: Size(width + b.theme.ButtonPadding),
		MinHeight:      Size(b.theme.FontSizeWithMargins()),
	}
}

func (b *Builder) listenPress(n *node) {
	h := n.handle
	b.backend.RegisterChangeListener(h, func(ev retained.Event) {
		if ev.Kind == retained.EventPress && n.handle == h {
			n.dirty = true
		}
	})
}

func (b *Builder) finishButton(n *node, flags Flags) bool {
	b.checkNextLayout(n)
	if n.mask != flags {
		if (n.mask^flags)&FlagNoInteractable != 0 {
			b.backend.SetProp(n.handle, retained.PropInteractable, flags&FlagNoInteractable == 0)
		}
		n.mask = flags
	}
	pressed := n.dirty
	n.dirty = false
	if pressed {
		b.countChange()
	}
	return pressed
}
