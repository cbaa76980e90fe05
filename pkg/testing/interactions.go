package testing

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/retained"
)

func (t *Tester) target(op string, finder Finder, roles ...retained.Role) (retained.Handle, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return retained.None, fmt.Errorf("%s: finder matched no elements: %s", op, finder.Description())
	}
	n := result.Node()
	for _, role := range roles {
		if n.Spec.Role == role {
			return n.Handle, nil
		}
	}
	return retained.None, fmt.Errorf("%s: %s matched a %s element", op, finder.Description(), n.Spec.Role)
}

// Type simulates a keystroke leaving text in the first input matched by
// finder. Pump to see the edit.
func (t *Tester) Type(finder Finder, text string) error {
	h, err := t.target("Type", finder, retained.RoleInput)
	if err != nil {
		return err
	}
	t.mem.Type(h, text)
	return nil
}

// Submit simulates finishing an edit of the first input matched by finder.
func (t *Tester) Submit(finder Finder, text string) error {
	h, err := t.target("Submit", finder, retained.RoleInput)
	if err != nil {
		return err
	}
	t.mem.Submit(h, text)
	return nil
}

// Press simulates clicking the first button matched by finder.
func (t *Tester) Press(finder Finder) error {
	h, err := t.target("Press", finder, retained.RoleButton)
	if err != nil {
		return err
	}
	t.mem.Press(h)
	return nil
}

// SetToggle simulates switching the first toggle matched by finder.
func (t *Tester) SetToggle(finder Finder, on bool) error {
	h, err := t.target("SetToggle", finder, retained.RoleToggle)
	if err != nil {
		return err
	}
	t.mem.Input(h, on)
	return nil
}

// Select simulates picking item index of the first dropdown matched by finder.
func (t *Tester) Select(finder Finder, index int) error {
	h, err := t.target("Select", finder, retained.RoleDropdown)
	if err != nil {
		return err
	}
	t.mem.Select(h, index)
	return nil
}

// SetMask simulates ticking items of the first mask dropdown matched by finder.
func (t *Tester) SetMask(finder Finder, mask uint64) error {
	h, err := t.target("SetMask", finder, retained.RoleMaskDropdown)
	if err != nil {
		return err
	}
	t.mem.SetMask(h, mask)
	return nil
}
