package immediate

import "github.com/go-drift/immediate/pkg/retained"

// buildFunc constructs the control of a field under content and registers
// the node's update callback and change listeners.
type buildFunc func(n *node, content retained.Handle)

// field reconciles a stateful widget. A rebuilt field pushes value into its
// new control. An existing field counts a pending edit, applies a pending
// layout override and pushes value unless the user edited the control since
// the previous pass. The node's cached value is the field's result.
func (b *Builder) field(kind Kind, name string, value any, flags Flags, build buildFunc) *node {
	n := b.nextField()
	if n == nil {
		return nil
	}
	if n.needsRebuild(name, kind) {
		content := b.fieldStructure(n, name, flags)
		build(n, content)
		n.updateValue(value)
		return n
	}
	if n.dirty {
		b.countChange()
	}
	b.checkNextLayout(n)
	n.updateValue(value)
	return n
}

// fieldStructure creates the field element, its optional name label and the
// content element controls go under.
func (b *Builder) fieldStructure(n *node, name string, flags Flags) retained.Handle {
	defaults := Preferred(-1, b.theme.FontSizeWithMargins())
	defaults.FlexibleWidth = Size(1)
	n.handle = b.backend.CreateNode(b.currentParent(), retained.Spec{
		Role:   retained.RoleField,
		Name:   "Field " + name,
		Layout: b.takeLayout(defaults),
	})
	n.mask = flags
	if flags&FlagNoFieldLabel == 0 {
		b.backend.CreateNode(n.handle, retained.Spec{
			Role:     retained.RoleText,
			Name:     "Label " + name,
			Text:     name,
			FontSize: b.theme.FontSize,
		})
	}
	return b.backend.CreateNode(n.handle, retained.Spec{
		Role: retained.RoleHorizontalLayout,
		Name: "Left " + name,
	})
}

// listen registers fn on h for events reaching n while h is still the
// element n reconciles.
func (b *Builder) listen(n *node, h retained.Handle, fn retained.Listener) {
	owner := n.handle
	b.backend.RegisterChangeListener(h, func(ev retained.Event) {
		if n.handle != owner {
			return
		}
		fn(ev)
	})
}

// textInput builds a single text input. Every edit is validated and recolours
// the input; only input that parses is committed.
func (b *Builder) textInput(n *node, content retained.Handle, name, placeholder string, parse parser, format func(any) string) {
	in := b.backend.CreateNode(content, retained.Spec{
		Role:        retained.RoleInput,
		Name:        name,
		Placeholder: placeholder,
		Disabled:    n.mask&FlagNoInteractable != 0,
	})
	b.listen(n, in, func(ev retained.Event) {
		if ev.Kind != retained.EventChange && ev.Kind != retained.EventSubmit {
			return
		}
		v, err := parse(ev.Text())
		b.backend.SetProp(in, retained.PropValid, err == nil)
		if err != nil || b.IsRefreshing() {
			return
		}
		n.commit(v)
	})
	n.update = func(v any) {
		b.backend.SetValue(in, format(v))
	}
}

// cached returns the node's value as a T, or fallback outside a pass.
func cached[T any](n *node, fallback T) T {
	if n == nil {
		return fallback
	}
	if v, ok := n.value.(T); ok {
		return v
	}
	return fallback
}

// TextField draws a named text input and returns its current text.
func (b *Builder) TextField(name, value string, flags Flags) string {
	n := b.field(KindTextField, name, value, flags, func(n *node, content retained.Handle) {
		b.textInput(n, content, name, "Enter text...", parseText, func(v any) string {
			return v.(string)
		})
	})
	return cached(n, value)
}

// IPField draws a text input that only accepts IP addresses.
func (b *Builder) IPField(name, value string, flags Flags) string {
	n := b.field(KindIPField, name, value, flags, func(n *node, content retained.Handle) {
		b.textInput(n, content, name, "Enter an address...", parseIP, func(v any) string {
			return v.(string)
		})
	})
	return cached(n, value)
}

// IntField draws a text input that only accepts integers.
func (b *Builder) IntField(name string, value int, flags Flags) int {
	n := b.field(KindIntField, name, value, flags, func(n *node, content retained.Handle) {
		b.textInput(n, content, name, "Enter an integer...", parseInt, func(v any) string {
			return formatInt(v.(int))
		})
	})
	return cached(n, value)
}

// FloatField draws a text input that only accepts numbers.
func (b *Builder) FloatField(name string, value float32, flags Flags) float32 {
	n := b.field(KindFloatField, name, value, flags, func(n *node, content retained.Handle) {
		b.textInput(n, content, name, "Enter a float...", parseFloat, func(v any) string {
			return formatFloat(v.(float32))
		})
	})
	return cached(n, value)
}

// Toggle draws a named checkbox.
func (b *Builder) Toggle(name string, value bool, flags Flags) bool {
	n := b.field(KindToggle, name, value, flags, func(n *node, content retained.Handle) {
		toggle := b.backend.CreateNode(content, retained.Spec{
			Role:     retained.RoleToggle,
			Name:     name,
			Disabled: flags&FlagNoInteractable != 0,
		})
		b.listen(n, toggle, func(ev retained.Event) {
			on, ok := ev.Value.(bool)
			if ev.Kind != retained.EventChange || !ok || b.IsRefreshing() {
				return
			}
			n.commit(on)
		})
		n.update = func(v any) {
			b.backend.SetValue(toggle, v)
		}
	})
	return cached(n, value)
}
