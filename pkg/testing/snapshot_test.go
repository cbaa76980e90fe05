package testing

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/immediate/pkg/immediate"
)

// fakeT records failures instead of failing the test.
type fakeT struct {
	fatals []string
	errs   []string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.errs = append(f.errs, fmt.Sprintf(format, args...))
}

func (f *fakeT) Name() string { return "TestFake" }

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewTesterWithT(t)
	_ = tester.PumpFrame(func(b *immediate.Builder) error {
		return b.VerticalLayout(func() error {
			b.Label("a")
			b.Label("b")
			b.Button("go", immediate.FlagNoInteractable)
			return nil
		})
	})

	root := tester.CaptureSnapshot().Tree
	if root == nil || root.Role != "surface" {
		t.Fatalf("root = %+v, want the surface", root)
	}
	layout := root.Children[0]
	if layout.ID != "vertical-layout#0" || len(layout.Children) != 3 {
		t.Fatalf("layout = %+v", layout)
	}
	if layout.Children[1].ID != "text#1" || layout.Children[1].Text != "b" {
		t.Errorf("second label = %+v", layout.Children[1])
	}
	if layout.Children[2].Props["interactable"] != false {
		t.Errorf("button props = %v", layout.Children[2].Props)
	}
}

func TestSnapshot_FileRoundTrip(t *testing.T) {
	tester := NewTesterWithT(t)
	volume := 3
	draw := func(b *immediate.Builder) error {
		volume = b.IntField("Volume", volume, immediate.FlagNone)
		return nil
	}
	_ = tester.PumpFrame(draw)
	path := filepath.Join(t.TempDir(), "snapshots", "volume.json")

	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile() error = %v", err)
	}

	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.fatals)+len(ft.errs) != 0 {
		t.Errorf("unchanged tree should match: %v %v", ft.fatals, ft.errs)
	}

	_ = tester.Type(ByName("Volume"), "4")
	_ = tester.Pump()
	ft = &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errs) != 1 || !strings.Contains(ft.errs[0], "snapshot mismatch") {
		t.Errorf("edited tree should not match: %v", ft.errs)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	tester := NewTesterWithT(t)
	ft := &fakeT{}

	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "none.json"))

	if len(ft.fatals) != 1 || !strings.Contains(ft.fatals[0], "IMMEDIATE_UPDATE_SNAPSHOTS=1") {
		t.Errorf("fatals = %v", ft.fatals)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewTesterWithT(t)
	_ = tester.PumpFrame(func(b *immediate.Builder) error {
		b.Separator(2)
		return nil
	})

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}
