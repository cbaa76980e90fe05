package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/immediate/pkg/retained"
)

// Finder locates elements in the retained tree.
type Finder interface {
	// Evaluate returns all matching live elements under root (depth-first pre-order).
	Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	mem     *retained.Memory
	handles []retained.Handle
	finder  Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() retained.Handle {
	if len(r.handles) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.description()))
	}
	return r.handles[0]
}

// FirstOrNone returns the first match, or retained.None if none.
func (r FinderResult) FirstOrNone() retained.Handle {
	if len(r.handles) == 0 {
		return retained.None
	}
	return r.handles[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) retained.Handle {
	if index < 0 || index >= len(r.handles) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.handles), r.description()))
	}
	return r.handles[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []retained.Handle {
	return r.handles
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.handles)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.handles) > 0
}

// Node returns the element of the first match. Panics if no matches.
func (r FinderResult) Node() *retained.MemoryNode {
	n, _ := r.mem.Node(r.First())
	return n
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// collectMatches walks the live elements under root in depth-first
// pre-order, root excluded.
func collectMatches(mem *retained.Memory, root retained.Handle, match func(*retained.MemoryNode) bool) []retained.Handle {
	var out []retained.Handle
	var visit func(h retained.Handle)
	visit = func(h retained.Handle) {
		for _, c := range mem.Children(h) {
			if !mem.Alive(c) {
				continue
			}
			if n, ok := mem.Node(c); ok && match(n) {
				out = append(out, c)
			}
			visit(c)
		}
	}
	visit(root)
	return out
}

// nameFinder matches elements by exact name.
type nameFinder struct {
	name string
}

func (f *nameFinder) Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle {
	return collectMatches(mem, root, func(n *retained.MemoryNode) bool {
		return n.Spec.Name == f.name
	})
}

func (f *nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName returns a finder that matches elements with the given name. Inputs,
// toggles and dropdowns carry their field's name.
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

// roleFinder matches elements by role.
type roleFinder struct {
	role retained.Role
}

func (f *roleFinder) Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle {
	return collectMatches(mem, root, func(n *retained.MemoryNode) bool {
		return n.Spec.Role == f.role
	})
}

func (f *roleFinder) Description() string {
	return fmt.Sprintf("ByRole(%s)", f.role)
}

// ByRole returns a finder that matches elements with the given role.
func ByRole(role retained.Role) Finder {
	return &roleFinder{role: role}
}

// textFinder matches elements by exact text.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle {
	return collectMatches(mem, root, func(n *retained.MemoryNode) bool {
		return n.Text == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches labels and buttons showing exactly text.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches elements whose text contains a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle {
	return collectMatches(mem, root, func(n *retained.MemoryNode) bool {
		return n.Text != "" && strings.Contains(n.Text, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches elements whose text contains
// substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches elements satisfying a predicate.
type predicateFinder struct {
	fn   func(*retained.MemoryNode) bool
	desc string
}

func (f *predicateFinder) Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle {
	return collectMatches(mem, root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements for which fn returns
// true. desc is used in error messages.
func ByPredicate(fn func(*retained.MemoryNode) bool, desc string) Finder {
	return &predicateFinder{fn: fn, desc: desc}
}

// descendantFinder matches elements found by of under elements found by ancestor.
type descendantFinder struct {
	ancestor Finder
	of       Finder
}

func (f *descendantFinder) Evaluate(mem *retained.Memory, root retained.Handle) []retained.Handle {
	var out []retained.Handle
	seen := make(map[retained.Handle]bool)
	for _, a := range f.ancestor.Evaluate(mem, root) {
		for _, h := range f.of.Evaluate(mem, a) {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(%s, %s)", f.ancestor.Description(), f.of.Description())
}

// Descendant returns a finder that matches elements found by of beneath any
// element found by ancestor.
func Descendant(ancestor, of Finder) Finder {
	return &descendantFinder{ancestor: ancestor, of: of}
}
