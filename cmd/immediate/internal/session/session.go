// Package session replays a scenario through the builder against an
// in-memory retained backend.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/immediate/cmd/immediate/internal/config"
	"github.com/go-drift/immediate/pkg/immediate"
	"github.com/go-drift/immediate/pkg/retained"
	"github.com/go-drift/immediate/pkg/theme"
)

// Session owns the backend, the builder and the current field values.
type Session struct {
	scenario *config.Scenario
	mem      *retained.Memory
	surface  retained.Handle
	builder  *immediate.Builder
	values   []any
	presses  map[string]int
	changes  int
}

// Result is the value of one stateful field after the replay.
type Result struct {
	Name  string
	Kind  string
	Value string
}

// New prepares a session. The first frame is drawn by Start.
func New(sc *config.Scenario, th *theme.Theme) (*Session, error) {
	s := &Session{
		scenario: sc,
		mem:      retained.NewMemory(),
		presses:  make(map[string]int),
	}
	s.surface = s.mem.NewSurface(sc.Title)
	overlay := s.mem.NewSurface(sc.Title + " overlay")
	s.builder = immediate.New(s.mem, s.surface,
		immediate.WithTheme(th),
		immediate.WithOverlayParent(overlay),
	)

	s.values = make([]any, len(sc.Fields))
	for i, f := range sc.Fields {
		v, err := initial(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		s.values[i] = v
	}
	return s, nil
}

// Memory returns the retained backend.
func (s *Session) Memory() *retained.Memory {
	return s.mem
}

// Surface returns the handle the UI is built under.
func (s *Session) Surface() retained.Handle {
	return s.surface
}

// Changes returns how many frames reported a user edit.
func (s *Session) Changes() int {
	return s.changes
}

// Presses returns how often the named button was pressed.
func (s *Session) Presses(name string) int {
	return s.presses[name]
}

// Start draws the first frame.
func (s *Session) Start() error {
	return s.Frame()
}

// Frame draws every field once.
func (s *Session) Frame() error {
	return s.builder.Frame(func() error {
		s.builder.BeginChangeCheck()
		err := s.builder.VerticalLayout(s.draw)
		if s.builder.EndChangeCheck() {
			s.changes++
		}
		return err
	})
}

// Close destroys every element.
func (s *Session) Close() {
	s.builder.Dispose()
}

func (s *Session) draw() error {
	b := s.builder
	fields := s.scenario.Fields
	for i := 0; i < len(fields); {
		row := fields[i].Row
		if row == "" {
			s.drawField(i)
			i++
			continue
		}
		j := i
		for j < len(fields) && fields[j].Row == row {
			j++
		}
		start, end := i, j
		if err := b.HorizontalLayout(func() error {
			for k := start; k < end; k++ {
				s.drawField(k)
			}
			return nil
		}); err != nil {
			return err
		}
		i = j
	}
	return nil
}

func (s *Session) drawField(i int) {
	b := s.builder
	f := s.scenario.Fields[i]
	flags := immediate.FlagNone
	if f.NoLabel {
		flags |= immediate.FlagNoFieldLabel
	}
	if f.Disabled {
		flags |= immediate.FlagNoInteractable
	}

	switch f.Kind {
	case config.KindLabel:
		b.Label(f.Name)
	case config.KindTitle:
		b.Title(f.Name)
	case config.KindSeparator:
		b.Separator(1)
	case config.KindLine:
		b.LineSeparator()
	case config.KindSpace:
		b.FlexibleSpace()
	case config.KindButton:
		if b.Button(f.Name, flags) {
			s.presses[f.Name]++
		}
	case config.KindText:
		s.values[i] = b.TextField(f.Name, s.values[i].(string), flags)
	case config.KindIP:
		s.values[i] = b.IPField(f.Name, s.values[i].(string), flags)
	case config.KindInt:
		s.values[i] = b.IntField(f.Name, s.values[i].(int), flags)
	case config.KindFloat:
		s.values[i] = b.FloatField(f.Name, s.values[i].(float32), flags)
	case config.KindToggle:
		s.values[i] = b.Toggle(f.Name, s.values[i].(bool), flags)
	case config.KindVector2:
		s.values[i] = b.Vector2Field(f.Name, s.values[i].(immediate.Vector2), flags)
	case config.KindVector3:
		s.values[i] = b.Vector3Field(f.Name, s.values[i].(immediate.Vector3), flags)
	case config.KindQuaternion:
		s.values[i] = b.QuaternionField(f.Name, s.values[i].(immediate.Quaternion), flags)
	case config.KindEnum:
		s.values[i] = immediate.EnumField(b, f.Name, s.values[i].(int), f.Items, flags)
	case config.KindMask:
		s.values[i] = immediate.EnumMaskField(b, f.Name, s.values[i].(uint64), f.Items, flags)
	case config.KindPopup:
		s.values[i] = b.PopupIndex(f.Name, s.values[i].(int), f.Items, flags)
	}
}

// Apply simulates one step on the retained tree and draws a frame.
func (s *Session) Apply(st config.Step) error {
	f, ok := s.field(st.Target)
	if !ok {
		return fmt.Errorf("unknown target %q", st.Target)
	}
	if err := s.simulate(f, st); err != nil {
		return fmt.Errorf("%s %q: %w", st.Action, st.Target, err)
	}
	return s.Frame()
}

func (s *Session) simulate(f config.Field, st config.Step) error {
	if st.Action == config.ActionPress {
		h := s.find("Button " + f.Name)
		if h == retained.None {
			return fmt.Errorf("button is not on screen")
		}
		s.mem.Press(h)
		return nil
	}

	switch f.Kind {
	case config.KindVector2, config.KindVector3, config.KindQuaternion:
		return s.simulateVector(f, st)
	}

	h := s.find(f.Name)
	if h == retained.None {
		return fmt.Errorf("element is not on screen")
	}
	switch st.Action {
	case config.ActionType:
		s.mem.Type(h, fmt.Sprint(st.Value))
	case config.ActionSubmit:
		s.mem.Submit(h, fmt.Sprint(st.Value))
	case config.ActionToggle:
		on, ok := st.Value.(bool)
		if !ok {
			return fmt.Errorf("toggle needs true or false, got %v", st.Value)
		}
		s.mem.Input(h, on)
	case config.ActionSelect:
		idx, err := index(st.Value, f.Items)
		if err != nil {
			return err
		}
		s.mem.Select(h, idx)
	case config.ActionMask:
		mask, err := maskOf(st.Value, f.Items)
		if err != nil {
			return err
		}
		s.mem.SetMask(h, mask)
	}
	return nil
}

// simulateVector edits the components of a vector field. The step value is
// a list with one entry per component; nil entries leave a component alone.
func (s *Session) simulateVector(f config.Field, st config.Step) error {
	parts, ok := st.Value.([]any)
	if !ok {
		return fmt.Errorf("vector edit needs a list, got %v", st.Value)
	}
	axes := []string{"X", "Y", "Z"}
	if f.Kind == config.KindVector2 {
		axes = axes[:2]
	}
	if len(parts) > len(axes) {
		return fmt.Errorf("%d components for a %d component vector", len(parts), len(axes))
	}
	for i, p := range parts {
		if p == nil {
			continue
		}
		h := s.find(axes[i] + " " + f.Name)
		if h == retained.None {
			return fmt.Errorf("component %s is not on screen", axes[i])
		}
		if st.Action == config.ActionSubmit {
			s.mem.Submit(h, fmt.Sprint(p))
		} else {
			s.mem.Type(h, fmt.Sprint(p))
		}
	}
	return nil
}

func (s *Session) find(name string) retained.Handle {
	return s.mem.FindIn(s.surface, name)
}

func (s *Session) field(name string) (config.Field, bool) {
	for _, f := range s.scenario.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return config.Field{}, false
}

// Results lists the stateful fields with their current values.
func (s *Session) Results() []Result {
	var out []Result
	for i, f := range s.scenario.Fields {
		if !f.Stateful() {
			continue
		}
		out = append(out, Result{Name: f.Name, Kind: f.Kind, Value: describe(f, s.values[i])})
	}
	return out
}

// Value returns the current value of the named stateful field.
func (s *Session) Value(name string) (any, bool) {
	for i, f := range s.scenario.Fields {
		if f.Name == name && f.Stateful() {
			return s.values[i], true
		}
	}
	return nil, false
}

func describe(f config.Field, v any) string {
	switch f.Kind {
	case config.KindEnum, config.KindPopup:
		idx := v.(int)
		if idx >= 0 && idx < len(f.Items) {
			return f.Items[idx]
		}
		return strconv.Itoa(idx)
	case config.KindMask:
		mask := v.(uint64)
		var names []string
		for i, item := range f.Items {
			if mask&(1<<i) != 0 {
				names = append(names, item)
			}
		}
		if len(names) == 0 {
			return "none"
		}
		return strings.Join(names, "|")
	case config.KindQuaternion:
		e := v.(immediate.Quaternion).Euler()
		return fmt.Sprintf("euler(%.2f, %.2f, %.2f)", e.X, e.Y, e.Z)
	case config.KindText, config.KindIP:
		return strconv.Quote(v.(string))
	}
	return fmt.Sprint(v)
}

// initial converts the YAML value of a field to the type its widget takes.
func initial(f config.Field) (any, error) {
	switch f.Kind {
	case config.KindText, config.KindIP:
		if f.Value == nil {
			return "", nil
		}
		return fmt.Sprint(f.Value), nil
	case config.KindInt:
		n, err := number(f.Value)
		return int(n), err
	case config.KindFloat:
		n, err := number(f.Value)
		return float32(n), err
	case config.KindToggle:
		if f.Value == nil {
			return false, nil
		}
		on, ok := f.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("want true or false, got %v", f.Value)
		}
		return on, nil
	case config.KindVector2:
		c, err := components(f.Value, 2)
		return immediate.Vector2{X: c[0], Y: c[1]}, err
	case config.KindVector3:
		c, err := components(f.Value, 3)
		return immediate.Vector3{X: c[0], Y: c[1], Z: c[2]}, err
	case config.KindQuaternion:
		if f.Value == nil {
			return immediate.IdentityQuaternion, nil
		}
		c, err := components(f.Value, 3)
		return immediate.QuaternionFromEuler(c[0], c[1], c[2]), err
	case config.KindEnum, config.KindPopup:
		if f.Value == nil {
			return 0, nil
		}
		return index(f.Value, f.Items)
	case config.KindMask:
		if f.Value == nil {
			return uint64(0), nil
		}
		return maskOf(f.Value, f.Items)
	}
	return nil, nil
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("want a number, got %v", v)
}

func components(v any, n int) ([]float32, error) {
	out := make([]float32, n)
	if v == nil {
		return out, nil
	}
	list, ok := v.([]any)
	if !ok || len(list) != n {
		return out, fmt.Errorf("want a list of %d numbers, got %v", n, v)
	}
	for i, item := range list {
		f, err := number(item)
		if err != nil {
			return out, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// index accepts an item name or a position.
func index(v any, items []string) (int, error) {
	if name, ok := v.(string); ok {
		for i, item := range items {
			if item == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("no item %q in %v", name, items)
	}
	n, ok := v.(int)
	if !ok || n < 0 || n >= len(items) {
		return 0, fmt.Errorf("item %v out of range", v)
	}
	return n, nil
}

// maskOf accepts a list of item names or a raw bit mask.
func maskOf(v any, items []string) (uint64, error) {
	switch m := v.(type) {
	case int:
		if m < 0 {
			return 0, fmt.Errorf("negative mask %d", m)
		}
		return uint64(m), nil
	case []any:
		var mask uint64
		for _, name := range m {
			idx, err := index(name, items)
			if err != nil {
				return 0, err
			}
			mask |= 1 << idx
		}
		return mask, nil
	}
	return 0, fmt.Errorf("want a list of items or a number, got %v", v)
}
