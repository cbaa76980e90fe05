package theme

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontRole selects one of the theme fonts.
type FontRole int

const (
	FontContent FontRole = iota
	FontTitle
	FontTabs
	FontMonospace
)

func (r FontRole) String() string {
	switch r {
	case FontTitle:
		return "title"
	case FontTabs:
		return "tabs"
	case FontMonospace:
		return "monospace"
	default:
		return "content"
	}
}

type faceKey struct {
	role FontRole
	size int
}

// Resources loads fonts on first use and keeps them for the lifetime of the
// theme. Each face is parsed at most once per role and size.
type Resources struct {
	theme *Theme

	mu    sync.Mutex
	fonts map[FontRole]*opentype.Font
	faces map[faceKey]font.Face
	loads int
}

func newResources(t *Theme) *Resources {
	return &Resources{
		theme: t,
		fonts: make(map[FontRole]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

func (r *Resources) path(role FontRole) string {
	switch role {
	case FontTitle:
		return r.theme.Fonts.Title
	case FontTabs:
		return r.theme.Fonts.Tabs
	case FontMonospace:
		return r.theme.Fonts.Monospace
	default:
		return r.theme.Fonts.Content
	}
}

func (r *Resources) font(role FontRole) (*opentype.Font, error) {
	if f, ok := r.fonts[role]; ok {
		return f, nil
	}
	data := goregular.TTF
	if p := r.path(role); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s font: %w", role, err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s font: %w", role, err)
	}
	r.loads++
	r.fonts[role] = f
	return f, nil
}

// Face returns the face for role at size points, loading it on first use.
// When the font cannot be loaded the bundled bitmap face is returned with
// the error.
func (r *Resources) Face(role FontRole, size int) (font.Face, error) {
	size = r.theme.FontSizeOr(size)
	key := faceKey{role: role, size: size}

	r.mu.Lock()
	defer r.mu.Unlock()
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	f, err := r.font(role)
	if err != nil {
		return basicfont.Face7x13, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, fmt.Errorf("failed to create %s face: %w", role, err)
	}
	r.faces[key] = face
	return face, nil
}

// Loaded returns how many font files have been parsed so far.
func (r *Resources) Loaded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

// MeasureText returns the advance width of s in pixels.
func (r *Resources) MeasureText(role FontRole, size int, s string) float32 {
	face, _ := r.Face(role, size)
	return fixedToFloat(font.MeasureString(face, s))
}

// LineHeight returns the line height of the face in pixels.
func (r *Resources) LineHeight(role FontRole, size int) float32 {
	face, _ := r.Face(role, size)
	return fixedToFloat(face.Metrics().Height)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
