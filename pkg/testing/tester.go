package testing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-drift/immediate/pkg/immediate"
	"github.com/go-drift/immediate/pkg/retained"
)

// ErrNoDraw is returned by Pump before any draw function was pumped.
var ErrNoDraw = errors.New("Pump called before PumpFrame")

// DrawFunc describes one frame of UI.
type DrawFunc func(b *immediate.Builder) error

// Tester runs frames of an immediate-mode UI against a retained.Memory
// backend and simulates user input on the resulting elements.
type Tester struct {
	mem     *retained.Memory
	surface retained.Handle
	builder *immediate.Builder
	draw    DrawFunc
	frames  int
}

// NewTester creates a tester with an empty surface.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...immediate.Option) *Tester {
	mem := retained.NewMemory()
	surface := mem.NewSurface("surface")
	return &Tester{
		mem:     mem,
		surface: surface,
		builder: immediate.New(mem, surface, opts...),
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, opts ...immediate.Option) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup destroys every element the builder created.
func (t *Tester) Cleanup() {
	t.builder.Dispose()
	t.draw = nil
}

// Builder returns the builder frames are drawn with.
func (t *Tester) Builder() *immediate.Builder {
	return t.builder
}

// Backend returns the in-memory backend.
func (t *Tester) Backend() *retained.Memory {
	return t.mem
}

// Surface returns the element the builder draws under.
func (t *Tester) Surface() retained.Handle {
	return t.surface
}

// Frames returns the number of frames pumped so far.
func (t *Tester) Frames() int {
	return t.frames
}

// PumpFrame makes draw the current UI and runs one frame of it.
func (t *Tester) PumpFrame(draw DrawFunc) error {
	t.draw = draw
	return t.Pump()
}

// Pump runs one more frame of the current UI.
func (t *Tester) Pump() error {
	if t.draw == nil {
		return ErrNoDraw
	}
	t.frames++
	draw := t.draw
	return t.builder.Frame(func() error {
		return draw(t.builder)
	})
}

// PumpFrames runs n frames of the current UI, stopping at the first error.
func (t *Tester) PumpFrames(n int) error {
	for range n {
		if err := t.Pump(); err != nil {
			return err
		}
	}
	return nil
}

// Find evaluates finder against the live elements under the surface.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		mem:     t.mem,
		handles: finder.Evaluate(t.mem, t.surface),
		finder:  finder,
	}
}

// Dump renders the retained tree as text.
func (t *Tester) Dump() string {
	var buf bytes.Buffer
	if err := retained.Dump(&buf, t.mem, t.surface); err != nil {
		return err.Error()
	}
	return buf.String()
}
