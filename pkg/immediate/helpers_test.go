package immediate_test

import (
	"fmt"
	"testing"

	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/immediate"
	"github.com/go-drift/immediate/pkg/retained"
)

// recorder collects reports instead of logging them.
type recorder struct {
	errs      []*errors.UIError
	panics    []*errors.PanicError
	structure []*errors.StructureError
}

func (r *recorder) HandleError(err *errors.UIError) {
	r.errs = append(r.errs, err)
}

func (r *recorder) HandlePanic(err *errors.PanicError) {
	r.panics = append(r.panics, err)
}

func (r *recorder) HandleStructureError(err *errors.StructureError) {
	r.structure = append(r.structure, err)
}

// journal is a Memory backend that logs element creation and destruction.
type journal struct {
	*retained.Memory
	ops []string
}

func (j *journal) CreateNode(parent retained.Handle, spec retained.Spec) retained.Handle {
	h := j.Memory.CreateNode(parent, spec)
	j.ops = append(j.ops, fmt.Sprintf("create %d %s", h, spec.Name))
	return h
}

func (j *journal) DestroyNode(h retained.Handle) {
	j.ops = append(j.ops, fmt.Sprintf("destroy %d", h))
	j.Memory.DestroyNode(h)
}

type fixture struct {
	t       *testing.T
	m       *retained.Memory
	surface retained.Handle
	b       *immediate.Builder
	rec     *recorder
}

func newFixture(t *testing.T, opts ...immediate.Option) *fixture {
	t.Helper()
	rec := &recorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	m := retained.NewMemory()
	surface := m.NewSurface("surface")
	return &fixture{
		t:       t,
		m:       m,
		surface: surface,
		b:       immediate.New(m, surface, opts...),
		rec:     rec,
	}
}

// frame runs a pass that is expected to succeed.
func (f *fixture) frame(draw func()) {
	f.t.Helper()
	err := f.b.Frame(func() error {
		draw()
		return nil
	})
	if err != nil {
		f.t.Fatalf("Frame() error = %v", err)
	}
}

// find returns the live element with the given name or fails the test.
func (f *fixture) find(name string) retained.Handle {
	f.t.Helper()
	h := f.m.Find(name)
	if h == retained.None {
		f.t.Fatalf("no element named %q", name)
	}
	return h
}

func (f *fixture) node(name string) *retained.MemoryNode {
	f.t.Helper()
	n, _ := f.m.Node(f.find(name))
	return n
}

// handles lists the handles of a cache snapshot in depth-first order.
func handles(info immediate.NodeInfo) []retained.Handle {
	var out []retained.Handle
	for _, c := range info.Children {
		out = append(out, c.Handle)
		out = append(out, handles(c)...)
	}
	return out
}

// valueCounter is a Memory backend that counts pushed values.
type valueCounter struct {
	*retained.Memory
	sets int
}

func (c *valueCounter) SetValue(h retained.Handle, v any) {
	c.sets++
	c.Memory.SetValue(h, v)
}
