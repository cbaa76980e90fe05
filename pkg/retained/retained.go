// Package retained defines the contract between the immediate builder and the
// retained UI it patches, plus an in-memory implementation of that contract.
//
// A Backend owns persistent UI elements and hands out opaque Handles for them.
// The immediate builder never looks inside a handle; it only creates,
// destroys, reparents and configures handles, and listens for user edits.
//
// Destruction may be deferred: a Backend is free to detach a destroyed handle
// immediately and release it later. Backends that defer implement Flusher so
// the builder can materialize pending destruction before each pass.
package retained

import "fmt"

// Handle is an opaque reference to a retained UI element.
type Handle uint64

// None is the zero handle. It never refers to an element.
const None Handle = 0

// Role describes what a retained element is.
type Role int

const (
	RoleNone Role = iota
	RoleSurface
	RoleVerticalLayout
	RoleHorizontalLayout
	RoleText
	RoleSeparator
	RoleLine
	RoleSpacer
	RoleButton
	RoleField
	RoleInput
	RoleToggle
	RoleDropdown
	RoleMaskDropdown
	RoleImage
)

func (r Role) String() string {
	switch r {
	case RoleSurface:
		return "surface"
	case RoleVerticalLayout:
		return "vertical-layout"
	case RoleHorizontalLayout:
		return "horizontal-layout"
	case RoleText:
		return "text"
	case RoleSeparator:
		return "separator"
	case RoleLine:
		return "line"
	case RoleSpacer:
		return "spacer"
	case RoleButton:
		return "button"
	case RoleField:
		return "field"
	case RoleInput:
		return "input"
	case RoleToggle:
		return "toggle"
	case RoleDropdown:
		return "dropdown"
	case RoleMaskDropdown:
		return "mask-dropdown"
	case RoleImage:
		return "image"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Layout carries layout element overrides. Nil fields keep the element's
// current value.
type Layout struct {
	FlexibleWidth   *float32
	FlexibleHeight  *float32
	MinWidth        *float32
	MinHeight       *float32
	PreferredWidth  *float32
	PreferredHeight *float32
	IgnoreLayout    bool
}

// Apply overlays the set fields of l onto dst and returns the result.
// IgnoreLayout always comes from l.
func (l Layout) Apply(dst Layout) Layout {
	dst.IgnoreLayout = l.IgnoreLayout
	if l.FlexibleWidth != nil {
		dst.FlexibleWidth = l.FlexibleWidth
	}
	if l.FlexibleHeight != nil {
		dst.FlexibleHeight = l.FlexibleHeight
	}
	if l.MinWidth != nil {
		dst.MinWidth = l.MinWidth
	}
	if l.MinHeight != nil {
		dst.MinHeight = l.MinHeight
	}
	if l.PreferredWidth != nil {
		dst.PreferredWidth = l.PreferredWidth
	}
	if l.PreferredHeight != nil {
		dst.PreferredHeight = l.PreferredHeight
	}
	return dst
}

// IsZero reports whether no override is set.
func (l Layout) IsZero() bool {
	return !l.IgnoreLayout && l.FlexibleWidth == nil && l.FlexibleHeight == nil &&
		l.MinWidth == nil && l.MinHeight == nil &&
		l.PreferredWidth == nil && l.PreferredHeight == nil
}

// Spec holds the construction parameters of a retained element.
type Spec struct {
	Role        Role
	Name        string
	Text        string
	FontSize    int
	Image       string
	Placeholder string
	Items       []string
	Layout      Layout
	Padding     float32
	Spacing     float32
	FitContent  bool
	Disabled    bool
	Value       any

	// Overlay is the element dropdowns open their item lists under.
	Overlay Handle
}

// Prop names a visual property that can change without rebuilding.
type Prop int

const (
	PropName Prop = iota
	PropText
	PropFontSize
	PropImage
	PropInteractable
	PropValid
	PropLayout
	PropItems
)

func (p Prop) String() string {
	switch p {
	case PropName:
		return "name"
	case PropText:
		return "text"
	case PropFontSize:
		return "font-size"
	case PropImage:
		return "image"
	case PropInteractable:
		return "interactable"
	case PropValid:
		return "valid"
	case PropLayout:
		return "layout"
	case PropItems:
		return "items"
	default:
		return fmt.Sprintf("Prop(%d)", int(p))
	}
}

// EventKind identifies a user interaction.
type EventKind int

const (
	// EventChange fires on every edit (keystroke, toggle flip, mask change).
	EventChange EventKind = iota
	// EventSubmit fires when a text edit ends.
	EventSubmit
	// EventPress fires when a button is pressed.
	EventPress
	// EventSelect fires when a dropdown item is picked.
	EventSelect
)

func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventSubmit:
		return "submit"
	case EventPress:
		return "press"
	case EventSelect:
		return "select"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to change listeners.
type Event struct {
	Kind   EventKind
	Handle Handle
	// Value is the control's new value: string for inputs, bool for toggles,
	// int for dropdowns, uint64 for mask dropdowns. Nil for presses.
	Value any
}

// Text returns the event value as a string, or "" if it is not one.
func (e Event) Text() string {
	s, _ := e.Value.(string)
	return s
}

// Listener receives events from a retained element.
type Listener func(Event)

// Backend is the retained UI the immediate builder reconciles against.
type Backend interface {
	// CreateNode creates an element under parent and returns its handle.
	CreateNode(parent Handle, spec Spec) Handle
	// DestroyNode releases an element and its subtree. Release may be deferred.
	DestroyNode(h Handle)
	// SetValue pushes a value into a control. Backends may notify listeners.
	SetValue(h Handle, value any)
	// SetProp changes a visual property in place.
	SetProp(h Handle, prop Prop, value any)
	// RegisterChangeListener subscribes fn to user interactions on h.
	RegisterChangeListener(h Handle, fn Listener)
	// Reparent moves h under parent at the given sibling index.
	Reparent(h, parent Handle, sibling int)
	// Children returns the live children of h in sibling order.
	Children(h Handle) []Handle
}

// Flusher is implemented by backends that defer destruction.
type Flusher interface {
	// Flush releases every element whose destruction is pending.
	Flush()
}
