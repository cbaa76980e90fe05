package immediate

import "github.com/go-drift/immediate/pkg/retained"

// components builds one labelled input per axis. An edit is committed once
// every input parses as a number; invalid inputs are recoloured.
type components struct {
	b      *Builder
	inputs []retained.Handle
	texts  []string
}

func (b *Builder) vectorInputs(n *node, content retained.Handle, name string, axes []string, commit func([]float32) any, format func(any) []string) {
	c := &components{
		b:      b,
		inputs: make([]retained.Handle, len(axes)),
		texts:  make([]string, len(axes)),
	}
	for i, axis := range axes {
		b.backend.CreateNode(content, retained.Spec{
			Role:     retained.RoleText,
			Name:     "Label " + axis + " " + name,
			Text:     axis,
			FontSize: b.theme.FontSize,
		})
		c.inputs[i] = b.backend.CreateNode(content, retained.Spec{
			Role:     retained.RoleInput,
			Name:     axis + " " + name,
			Disabled: n.mask&FlagNoInteractable != 0,
		})
	}
	for i, in := range c.inputs {
		b.listen(n, in, func(ev retained.Event) {
			if ev.Kind != retained.EventChange && ev.Kind != retained.EventSubmit {
				return
			}
			c.texts[i] = ev.Text()
			values, ok := c.parse()
			if !ok || b.IsRefreshing() {
				return
			}
			n.commit(commit(values))
		})
	}
	n.update = func(v any) {
		copy(c.texts, format(v))
		for i, in := range c.inputs {
			b.backend.SetValue(in, c.texts[i])
		}
	}
}

func (c *components) parse() ([]float32, bool) {
	values := make([]float32, len(c.texts))
	ok := true
	for i, text := range c.texts {
		v, err := parseFloat32(text)
		c.b.backend.SetProp(c.inputs[i], retained.PropValid, err == nil)
		if err != nil {
			ok = false
			continue
		}
		values[i] = v
	}
	return values, ok
}

// Vector2Field draws an input per component of a Vector2.
func (b *Builder) Vector2Field(name string, value Vector2, flags Flags) Vector2 {
	n := b.field(KindVector2Field, name, value, flags, func(n *node, content retained.Handle) {
		b.vectorInputs(n, content, name, []string{"X", "Y"},
			func(v []float32) any { return Vector2{X: v[0], Y: v[1]} },
			func(v any) []string {
				vec := v.(Vector2)
				return []string{formatFloat(vec.X), formatFloat(vec.Y)}
			})
	})
	return cached(n, value)
}

// Vector3Field draws an input per component of a Vector3.
func (b *Builder) Vector3Field(name string, value Vector3, flags Flags) Vector3 {
	n := b.field(KindVector3Field, name, value, flags, func(n *node, content retained.Handle) {
		b.vectorInputs(n, content, name, []string{"X", "Y", "Z"},
			func(v []float32) any { return Vector3{X: v[0], Y: v[1], Z: v[2]} },
			formatVector3)
	})
	return cached(n, value)
}

// QuaternionField edits a rotation as Euler angles in degrees.
func (b *Builder) QuaternionField(name string, value Quaternion, flags Flags) Quaternion {
	n := b.field(KindQuaternionField, name, value, flags, func(n *node, content retained.Handle) {
		b.vectorInputs(n, content, name, []string{"X", "Y", "Z"},
			func(v []float32) any { return QuaternionFromEuler(v[0], v[1], v[2]) },
			func(v any) []string { return formatVector3(v.(Quaternion).Euler()) })
	})
	return cached(n, value)
}

func formatVector3(v any) []string {
	vec := v.(Vector3)
	return []string{formatFloat(vec.X), formatFloat(vec.Y), formatFloat(vec.Z)}
}
