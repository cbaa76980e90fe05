package immediate

import (
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/go-drift/immediate/pkg/retained"
)

// EnumField draws a dropdown picking one of names. The value of names[i] is
// E(i). A different names list replaces the items in place.
func EnumField[E constraints.Integer](b *Builder, name string, value E, names []string, flags Flags) E {
	n := b.field(KindEnumField, name, value, flags, func(n *node, content retained.Handle) {
		dropdown := b.dropdown(n, content, name, retained.RoleDropdown, names)
		b.listen(n, dropdown, func(ev retained.Event) {
			index, ok := ev.Value.(int)
			if ev.Kind != retained.EventSelect || !ok || b.IsRefreshing() {
				return
			}
			n.commit(E(index))
		})
		n.update = func(v any) {
			b.backend.SetValue(dropdown, int(v.(E)))
		}
	})
	b.syncItems(n, names)
	return cached(n, value)
}

// EnumMaskField draws a dropdown ticking any of names. Bit i of the value is
// names[i].
func EnumMaskField[E constraints.Integer](b *Builder, name string, value E, names []string, flags Flags) E {
	n := b.field(KindEnumMaskField, name, value, flags, func(n *node, content retained.Handle) {
		dropdown := b.dropdown(n, content, name, retained.RoleMaskDropdown, names)
		b.listen(n, dropdown, func(ev retained.Event) {
			mask, ok := ev.Value.(uint64)
			if ev.Kind != retained.EventChange || !ok || b.IsRefreshing() {
				return
			}
			n.commit(E(mask))
		})
		n.update = func(v any) {
			b.backend.SetValue(dropdown, uint64(v.(E)))
		}
	})
	b.syncItems(n, names)
	return cached(n, value)
}

// dropdown creates the control of a choice field. The names it shows are
// kept in the node's first extra slot.
func (b *Builder) dropdown(n *node, content retained.Handle, name string, role retained.Role, names []string) retained.Handle {
	n.control = b.backend.CreateNode(content, retained.Spec{
		Role:     role,
		Name:     name,
		Items:    slices.Clone(names),
		Disabled: n.mask&FlagNoInteractable != 0,
		Overlay:  b.overlay,
	})
	n.setExtra(0, slices.Clone(names))
	return n.control
}

// syncItems replaces the dropdown items when names differ from the ones it
// shows.
func (b *Builder) syncItems(n *node, names []string) {
	if n == nil || n.control == retained.None {
		return
	}
	if n.setExtra(0, slices.Clone(names)) {
		b.backend.SetProp(n.control, retained.PropItems, slices.Clone(names))
	}
}

// items returns the names the node's dropdown shows.
func items(n *node) []string {
	if len(n.extra) == 0 {
		return nil
	}
	names, _ := n.extra[0].([]string)
	return names
}

// Popup draws a dropdown over value.Names and returns the selected index.
// Changing the names updates the items in place, also in a frame that picks
// up a user selection.
func (b *Builder) Popup(name string, value EnumString, flags Flags) int {
	value = value.clone()
	n := b.field(KindPopup, name, value, flags, func(n *node, content retained.Handle) {
		dropdown := b.dropdown(n, content, name, retained.RoleDropdown, value.Names)
		b.listen(n, dropdown, func(ev retained.Event) {
			index, ok := ev.Value.(int)
			if ev.Kind != retained.EventSelect || !ok || b.IsRefreshing() {
				return
			}
			n.commit(EnumString{Names: items(n), Selected: index})
		})
		n.update = func(v any) {
			b.backend.SetValue(dropdown, v.(EnumString).Selected)
		}
	})
	if n == nil {
		return value.Selected
	}
	b.syncItems(n, value.Names)
	if e, ok := n.value.(EnumString); ok {
		e.Names = value.Names
		n.value = e
	}
	return cached(n, value).Selected
}

// PopupIndex is Popup over names with selected as the current index.
func (b *Builder) PopupIndex(name string, selected int, names []string, flags Flags) int {
	return b.Popup(name, EnumString{Names: names, Selected: selected}, flags)
}
