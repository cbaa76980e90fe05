package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	th := Default()
	if err := th.Validate(); err != nil {
		t.Fatalf("Default theme invalid: %v", err)
	}
	if got := th.FontSizeWithMargins(); got != 28 {
		t.Errorf("FontSizeWithMargins() = %v, want 28", got)
	}
	if got := th.FontSizeOr(0); got != 16 {
		t.Errorf("FontSizeOr(0) = %d, want 16", got)
	}
	if got := th.FontSizeOr(24); got != 24 {
		t.Errorf("FontSizeOr(24) = %d, want 24", got)
	}
}

func TestParse(t *testing.T) {
	th, err := Parse([]byte(`
version: 1.0.0
font_size: 12
colors:
  field_invalid: [1, 0, 0, 1]
sprites:
  button: RoundButton
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Version != "v1.0.0" {
		t.Errorf("Version = %q, want v1.0.0", th.Version)
	}
	if th.FontSize != 12 {
		t.Errorf("FontSize = %d, want 12", th.FontSize)
	}
	if th.TitleFontSize != 24 {
		t.Errorf("TitleFontSize = %d, want default 24", th.TitleFontSize)
	}
	if diff := cmp.Diff(Color{1, 0, 0, 1}, th.Colors.FieldInvalid); diff != "" {
		t.Errorf("FieldInvalid mismatch (-want +got):\n%s", diff)
	}
	if th.Sprites.Button != "RoundButton" || th.Sprites.Cross != "Cross" {
		t.Errorf("unexpected sprites: %+v", th.Sprites)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad version", "version: banana", "invalid theme version"},
		{"major bump", "version: v2.0.0", "unsupported theme version"},
		{"newer minor", "version: v1.4.0", "newer than"},
		{"zero font", "version: v1.0.0\nfont_size: 0", "font_size must be positive"},
		{"small margins", "version: v1.0.0\nmargin_ratio: 0.5", "margin_ratio"},
		{"bad yaml", "font_size: [", "failed to parse theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("version: v1.0.0\nfont_size: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.FontSize != 20 {
		t.Errorf("FontSize = %d, want 20", th.FontSize)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResourcesLoadLazily(t *testing.T) {
	th := Default()
	res := th.Resources()
	if res != th.Resources() {
		t.Error("Resources should be created once per theme")
	}
	if res.Loaded() != 0 {
		t.Fatalf("Loaded() = %d before first use, want 0", res.Loaded())
	}

	face, err := res.Face(FontContent, 0)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	again, _ := res.Face(FontContent, 16)
	if face != again {
		t.Error("same role and size should reuse the face")
	}
	if res.Loaded() != 1 {
		t.Errorf("Loaded() = %d, want 1", res.Loaded())
	}
}

func TestResourcesMissingFontFallsBack(t *testing.T) {
	th := Default()
	th.Fonts.Title = filepath.Join(t.TempDir(), "missing.ttf")
	face, err := th.Resources().Face(FontTitle, 24)
	if err == nil {
		t.Error("expected error for missing font file")
	}
	if face == nil {
		t.Error("expected fallback face")
	}
}

func TestMeasureText(t *testing.T) {
	res := Default().Resources()
	short := res.MeasureText(FontContent, 16, "OK")
	long := res.MeasureText(FontContent, 16, "Cancel everything")
	if short <= 0 {
		t.Errorf("MeasureText(OK) = %v, want > 0", short)
	}
	if long <= short {
		t.Errorf("longer text should measure wider: %v <= %v", long, short)
	}
	if res.LineHeight(FontContent, 16) <= 0 {
		t.Error("LineHeight should be positive")
	}
}
