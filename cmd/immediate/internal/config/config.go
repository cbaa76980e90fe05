// Package config loads the scenario files replayed by "immediate run".
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/immediate/pkg/errors"
)

// Field kinds understood by the scenario runner.
const (
	KindText       = "text"
	KindIP         = "ip"
	KindInt        = "int"
	KindFloat      = "float"
	KindToggle     = "toggle"
	KindVector2    = "vector2"
	KindVector3    = "vector3"
	KindQuaternion = "quaternion"
	KindEnum       = "enum"
	KindMask       = "mask"
	KindPopup      = "popup"
	KindButton     = "button"
	KindLabel      = "label"
	KindTitle      = "title"
	KindSeparator  = "separator"
	KindLine       = "line"
	KindSpace      = "space"
)

// Step actions.
const (
	ActionType   = "type"
	ActionSubmit = "submit"
	ActionPress  = "press"
	ActionToggle = "toggle"
	ActionSelect = "select"
	ActionMask   = "mask"
)

var stateful = map[string]bool{
	KindText: true, KindIP: true, KindInt: true, KindFloat: true, KindToggle: true,
	KindVector2: true, KindVector3: true, KindQuaternion: true,
	KindEnum: true, KindMask: true, KindPopup: true,
}

var static = map[string]bool{
	KindButton: true, KindLabel: true, KindTitle: true,
	KindSeparator: true, KindLine: true, KindSpace: true,
}

// Scenario is a scripted UI session.
type Scenario struct {
	Title  string  `yaml:"title,omitempty"`
	Theme  string  `yaml:"theme,omitempty"`
	Fields []Field `yaml:"fields"`
	Steps  []Step  `yaml:"steps,omitempty"`
}

// Field is one widget drawn every frame.
type Field struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Value   any      `yaml:"value,omitempty"`
	Items   []string `yaml:"items,omitempty"`
	NoLabel bool     `yaml:"no_label,omitempty"`
	// Disabled maps to FlagNoInteractable.
	Disabled bool `yaml:"disabled,omitempty"`
	// Row groups consecutive fields with the same row into a horizontal layout.
	Row string `yaml:"row,omitempty"`
}

// Stateful reports whether the field holds a value edited by the user.
func (f Field) Stateful() bool {
	return stateful[f.Kind]
}

// Step is one simulated interaction, followed by a frame.
type Step struct {
	Action string `yaml:"action"`
	Target string `yaml:"target"`
	Value  any    `yaml:"value,omitempty"`
}

// Load reads and validates a scenario. A missing title defaults to the name
// of the Go module containing the scenario; a relative theme path is resolved
// against the scenario directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.Load", fmt.Errorf("failed to read scenario: %w", err))
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, configError("config.Load", fmt.Errorf("%s: %w", path, err))
	}

	dir := filepath.Dir(path)
	if sc.Theme != "" && !filepath.IsAbs(sc.Theme) {
		sc.Theme = filepath.Join(dir, sc.Theme)
	}
	if strings.TrimSpace(sc.Title) == "" {
		sc.Title = DefaultTitle(dir)
	}
	return sc, nil
}

// Parse decodes and validates a scenario without resolving paths.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks field kinds, names and step targets.
func (s *Scenario) Validate() error {
	var errs []error
	names := make(map[string]string)
	for i, f := range s.Fields {
		switch {
		case !stateful[f.Kind] && !static[f.Kind]:
			errs = append(errs, fmt.Errorf("fields[%d]: unknown kind %q", i, f.Kind))
			continue
		case f.Name == "" && f.Kind != KindSeparator && f.Kind != KindLine && f.Kind != KindSpace:
			errs = append(errs, fmt.Errorf("fields[%d]: %s needs a name", i, f.Kind))
			continue
		}
		switch f.Kind {
		case KindEnum, KindMask, KindPopup:
			if len(f.Items) == 0 {
				errs = append(errs, fmt.Errorf("fields[%d]: %s %q needs items", i, f.Kind, f.Name))
			}
		}
		if f.Name == "" {
			continue
		}
		if _, ok := names[f.Name]; ok {
			errs = append(errs, fmt.Errorf("fields[%d]: duplicate name %q", i, f.Name))
		}
		names[f.Name] = f.Kind
	}

	for i, st := range s.Steps {
		kind, ok := names[st.Target]
		if !ok {
			errs = append(errs, fmt.Errorf("steps[%d]: unknown target %q", i, st.Target))
			continue
		}
		if want := actionKinds(st.Action); want == nil {
			errs = append(errs, fmt.Errorf("steps[%d]: unknown action %q", i, st.Action))
		} else if !want[kind] {
			errs = append(errs, fmt.Errorf("steps[%d]: cannot %s a %s field", i, st.Action, kind))
		}
	}
	return stderrors.Join(errs...)
}

func actionKinds(action string) map[string]bool {
	switch action {
	case ActionType, ActionSubmit:
		return map[string]bool{
			KindText: true, KindIP: true, KindInt: true, KindFloat: true,
			KindVector2: true, KindVector3: true, KindQuaternion: true,
		}
	case ActionPress:
		return map[string]bool{KindButton: true}
	case ActionToggle:
		return map[string]bool{KindToggle: true}
	case ActionSelect:
		return map[string]bool{KindEnum: true, KindPopup: true}
	case ActionMask:
		return map[string]bool{KindMask: true}
	}
	return nil
}

func configError(op string, err error) error {
	return &errors.UIError{Op: op, Kind: errors.KindConfig, Err: err}
}

// DefaultTitle derives a surface title from the go.mod above dir, falling
// back to the directory name.
func DefaultTitle(dir string) string {
	root, err := FindModuleRoot(dir)
	if err == nil {
		if path, err := ModulePath(root); err == nil {
			return titleFromModule(path, root)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "immediate"
	}
	return filepath.Base(abs)
}

// FindModuleRoot walks up from dir to find go.mod.
func FindModuleRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// ModulePath reads the module path declared in dir/go.mod.
func ModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func titleFromModule(modulePath, dir string) string {
	base := filepath.Base(dir)
	if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
		parts := strings.Split(prefix, "/")
		base = parts[len(parts)-1]
	}
	if base == "" {
		return "immediate"
	}
	return base
}
