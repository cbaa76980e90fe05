// Package theme holds the visual constants and resources of an immediate UI
// surface. A Theme is created by the caller and passed to the builder; nothing
// in this package is global.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the newest theme file version this package understands.
const SchemaVersion = "v1.0.0"

// Color is an RGBA colour with components in [0, 1].
type Color [4]float32

// RGB returns an opaque colour.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Colors groups the theme palette.
type Colors struct {
	Text         Color `yaml:"text"`
	FieldValid   Color `yaml:"field_valid"`
	FieldInvalid Color `yaml:"field_invalid"`
	Separator    Color `yaml:"separator"`
}

// Fonts lists font files by usage. Empty paths use the bundled fallback face.
type Fonts struct {
	Title     string `yaml:"title,omitempty"`
	Tabs      string `yaml:"tabs,omitempty"`
	Content   string `yaml:"content,omitempty"`
	Monospace string `yaml:"monospace,omitempty"`
}

// Sprites lists sprite names by usage.
type Sprites struct {
	Background string `yaml:"background,omitempty"`
	TabButton  string `yaml:"tab_button,omitempty"`
	Button     string `yaml:"button,omitempty"`
	Cross      string `yaml:"cross,omitempty"`
	Checkmark  string `yaml:"checkmark,omitempty"`
	Field      string `yaml:"field,omitempty"`
}

// Theme describes sizes, colours and resources of a surface.
type Theme struct {
	Version        string  `yaml:"version"`
	FontSize       int     `yaml:"font_size"`
	TitleFontSize  int     `yaml:"title_font_size"`
	MarginRatio    float32 `yaml:"margin_ratio"`
	ButtonPadding  float32 `yaml:"button_padding"`
	SurfacePadding float32 `yaml:"surface_padding"`
	Colors         Colors  `yaml:"colors"`
	Fonts          Fonts   `yaml:"fonts"`
	Sprites        Sprites `yaml:"sprites"`

	resources *Resources
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{
		Version:        SchemaVersion,
		FontSize:       16,
		TitleFontSize:  24,
		MarginRatio:    7.0 / 4.0,
		ButtonPadding:  16,
		SurfacePadding: 10,
		Colors: Colors{
			Text:         RGB(0.1, 0.1, 0.1),
			FieldValid:   RGB(1, 1, 1),
			FieldInvalid: RGB(1, 0.8, 0.8),
			Separator:    Color{0, 0, 0, 0.25},
		},
		Sprites: Sprites{
			Background: "Background",
			TabButton:  "TabButton",
			Button:     "Button",
			Cross:      "Cross",
			Checkmark:  "Checkmark",
			Field:      "Field",
		},
	}
}

// Load reads a theme file. Missing keys keep their Default values.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML theme on top of Default and validates it.
func Parse(data []byte) (*Theme, error) {
	t := Default()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the schema version and numeric ranges.
func (t *Theme) Validate() error {
	v := strings.TrimSpace(t.Version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid theme version %q", t.Version)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported theme version %s (want %s.x)", v, semver.Major(SchemaVersion))
	}
	if semver.Compare(v, SchemaVersion) > 0 {
		return fmt.Errorf("theme version %s is newer than %s", v, SchemaVersion)
	}
	t.Version = v

	var errs []error
	if t.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font_size must be positive, got %d", t.FontSize))
	}
	if t.TitleFontSize <= 0 {
		errs = append(errs, fmt.Errorf("title_font_size must be positive, got %d", t.TitleFontSize))
	}
	if t.MarginRatio < 1 {
		errs = append(errs, fmt.Errorf("margin_ratio must be at least 1, got %g", t.MarginRatio))
	}
	return errors.Join(errs...)
}

// FontSizeOr returns size, or the theme font size when size is zero.
func (t *Theme) FontSizeOr(size int) int {
	if size <= 0 {
		return t.FontSize
	}
	return size
}

// FontSizeWithMargins is the height of one line of content, margins included.
func (t *Theme) FontSizeWithMargins() float32 {
	return float32(t.FontSize) * t.MarginRatio
}

// Resources returns the lazily loaded resources of the theme.
func (t *Theme) Resources() *Resources {
	if t.resources == nil {
		t.resources = newResources(t)
	}
	return t.resources
}
