package retained

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/immediate/pkg/errors"
)

// recordingHandler captures backend errors for testing.
type recordingHandler struct {
	errors.LogHandler
	errs []*errors.UIError
}

func (h *recordingHandler) HandleError(err *errors.UIError) {
	h.errs = append(h.errs, err)
}

func withRecorder(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func TestMemory_CreateAttachesToParent(t *testing.T) {
	m := NewMemory()
	root := m.NewSurface("root")
	a := m.CreateNode(root, Spec{Role: RoleText, Name: "a", Text: "A"})
	b := m.CreateNode(root, Spec{Role: RoleButton, Name: "b"})

	if diff := cmp.Diff([]Handle{a, b}, m.Children(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	n, ok := m.Node(a)
	if !ok {
		t.Fatal("expected node a to exist")
	}
	if n.Parent != root || n.Text != "A" || !n.Valid || !n.Interactable {
		t.Errorf("unexpected node state: %+v", n)
	}
	if m.Created() != 3 {
		t.Errorf("Created() = %d, want 3", m.Created())
	}
}

func TestMemory_DestroyIsDeferred(t *testing.T) {
	m := NewMemory()
	root := m.NewSurface("root")
	field := m.CreateNode(root, Spec{Role: RoleField, Name: "f"})
	input := m.CreateNode(field, Spec{Role: RoleInput, Name: "i"})

	m.DestroyNode(field)
	m.DestroyNode(field)

	if len(m.Children(root)) != 0 {
		t.Error("destroyed node should be detached immediately")
	}
	if m.Alive(field) || m.Alive(input) {
		t.Error("destroyed subtree should not be alive")
	}
	if _, ok := m.Node(input); !ok {
		t.Error("node should still exist until Flush")
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}

	m.Flush()

	if _, ok := m.Node(field); ok {
		t.Error("node should be released after Flush")
	}
	if diff := cmp.Diff([]Handle{input, field}, m.Destroyed()); diff != "" {
		t.Errorf("destroyed mismatch (-want +got):\n%s", diff)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemory_OperationsOnDestroyedHandleAreReported(t *testing.T) {
	rec := withRecorder(t)
	m := NewMemory()
	root := m.NewSurface("root")
	h := m.CreateNode(root, Spec{Role: RoleInput})
	m.DestroyNode(h)

	m.SetValue(h, "x")
	m.SetProp(h, PropText, "x")
	m.Flush()
	m.SetValue(h, "x")

	if len(rec.errs) != 3 {
		t.Fatalf("reported %d errors, want 3", len(rec.errs))
	}
	for _, err := range rec.errs {
		if err.Kind != errors.KindBackend {
			t.Errorf("Kind = %s, want backend", err.Kind)
		}
	}
}

func TestMemory_SetValueNotifiesListeners(t *testing.T) {
	m := NewMemory()
	h := m.CreateNode(None, Spec{Role: RoleInput})

	var events []Event
	m.RegisterChangeListener(h, func(ev Event) { events = append(events, ev) })

	m.SetValue(h, "5")
	m.Submit(h, "7")

	want := []EventKind{EventChange, EventChange, EventSubmit}
	var got []EventKind
	for _, ev := range events {
		got = append(got, ev.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if events[2].Text() != "7" {
		t.Errorf("submit text = %q, want 7", events[2].Text())
	}
}

func TestMemory_PressRespectsInteractable(t *testing.T) {
	m := NewMemory()
	h := m.CreateNode(None, Spec{Role: RoleButton})
	presses := 0
	m.RegisterChangeListener(h, func(ev Event) {
		if ev.Kind == EventPress {
			presses++
		}
	})

	m.Press(h)
	m.SetProp(h, PropInteractable, false)
	m.Press(h)

	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}
}

func TestMemory_Reparent(t *testing.T) {
	m := NewMemory()
	root := m.NewSurface("root")
	a := m.CreateNode(root, Spec{Name: "a"})
	b := m.CreateNode(root, Spec{Name: "b"})
	c := m.CreateNode(root, Spec{Name: "c"})

	// Inserting at index 0 from last to first keeps their order.
	for _, h := range []Handle{c, b, a} {
		m.Reparent(h, root, 0)
	}
	if diff := cmp.Diff([]Handle{a, b, c}, m.Children(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	m.Reparent(a, root, 99)
	if diff := cmp.Diff([]Handle{b, c, a}, m.Children(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_SetPropLayoutOverlays(t *testing.T) {
	m := NewMemory()
	w := float32(10)
	h := float32(20)
	n := m.CreateNode(None, Spec{Layout: Layout{PreferredWidth: &w}})
	m.SetProp(n, PropLayout, Layout{PreferredHeight: &h})

	node, _ := m.Node(n)
	if node.Layout.PreferredWidth == nil || *node.Layout.PreferredWidth != 10 {
		t.Error("existing preferred width should be kept")
	}
	if node.Layout.PreferredHeight == nil || *node.Layout.PreferredHeight != 20 {
		t.Error("preferred height should be applied")
	}
}

func TestMemory_SetPropWrongTypeIsReported(t *testing.T) {
	rec := withRecorder(t)
	m := NewMemory()
	n := m.CreateNode(None, Spec{})
	m.SetProp(n, PropFontSize, "big")
	if len(rec.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(rec.errs))
	}
}

func TestMemory_Find(t *testing.T) {
	m := NewMemory()
	root := m.NewSurface("root")
	field := m.CreateNode(root, Spec{Role: RoleField, Name: "Field age"})
	input := m.CreateNode(field, Spec{Role: RoleInput, Name: "age"})

	if got := m.Find("age"); got != input {
		t.Errorf("Find = %d, want %d", got, input)
	}
	if got := m.FindIn(root, "age"); got != input {
		t.Errorf("FindIn = %d, want %d", got, input)
	}
	if got := m.FindRole(root, RoleInput); got != input {
		t.Errorf("FindRole = %d, want %d", got, input)
	}
	m.DestroyNode(field)
	if got := m.Find("age"); got != None {
		t.Errorf("Find after destroy = %d, want None", got)
	}
}

func TestDump(t *testing.T) {
	m := NewMemory()
	root := m.NewSurface("Tab")
	layout := m.CreateNode(root, Spec{Role: RoleVerticalLayout, Name: "VerticalLayout"})
	m.CreateNode(layout, Spec{Role: RoleText, Name: "Title Hello", Text: "Hello"})
	input := m.CreateNode(layout, Spec{Role: RoleInput, Name: "age", Value: "x"})
	m.SetProp(input, PropValid, false)

	var buf bytes.Buffer
	if err := Dump(&buf, m, root); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`surface "Tab"`,
		`├─ text "Title Hello"`,
		`text="Hello"`,
		`└─ input "age"`,
		"invalid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
