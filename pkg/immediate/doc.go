// Package immediate provides an immediate-mode UI builder over a retained
// widget tree.
//
// Callers describe their UI once per frame by calling widget methods on a
// Builder inside Frame. The builder matches each call to the widget drawn at
// the same position during the previous frame and patches the retained tree
// through a retained.Backend:
//
//	err := b.Frame(func() error {
//	    return b.VerticalLayout(func() error {
//	        b.Title("Player")
//	        s.Name = b.TextField("Name", s.Name, immediate.FlagNone)
//	        s.Health = b.IntField("Health", s.Health, immediate.FlagNone)
//	        if b.Button("Reset", immediate.FlagNone) {
//	            s.Health = 100
//	        }
//	        return nil
//	    })
//	})
//
// # Identity
//
// A widget is identified by its position among its siblings plus a key made
// of its kind and, for fields, its name. While the key stays the same the
// retained element is reused and only changed properties are pushed. A
// different key destroys the element and builds a new one. Widgets that are
// no longer drawn are destroyed at the end of their container.
//
// Unnamed siblings are identified by position only. Reordering them between
// frames cannot be told apart from changing the widgets at those positions.
//
// # Values
//
// Field methods return the field's current value. That is the value passed
// in, unless the user edited the control since the previous frame; the edit
// wins once and the caller is expected to store it. Text inputs are checked on
// every edit: input that does not parse is shown as invalid and never
// returned.
//
// BeginChangeCheck and EndChangeCheck report whether any field or button
// between them was edited.
//
// # Errors
//
// Unbalanced Begin/End calls are reported through the errors package and
// corrected. An error returned by a draw callback, or a panic inside one,
// closes every container it left open and is returned from the layout call
// and from Frame.
package immediate
