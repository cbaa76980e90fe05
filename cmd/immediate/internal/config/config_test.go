package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/immediate/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(`
title: Player
fields:
  - {name: Name, kind: text, value: ada}
  - {name: Volume, kind: int, value: 5}
  - {name: Position, kind: vector3, value: [1, 2.5, 3]}
  - {name: Mode, kind: popup, items: [Windowed, Fullscreen]}
  - {kind: line}
steps:
  - {action: submit, target: Volume, value: 7}
  - {action: select, target: Mode, value: Fullscreen}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Scenario{
		Title: "Player",
		Fields: []Field{
			{Name: "Name", Kind: KindText, Value: "ada"},
			{Name: "Volume", Kind: KindInt, Value: 5},
			{Name: "Position", Kind: KindVector3, Value: []any{1, 2.5, 3}},
			{Name: "Mode", Kind: KindPopup, Items: []string{"Windowed", "Fullscreen"}},
			{Kind: KindLine},
		},
		Steps: []Step{
			{Action: ActionSubmit, Target: "Volume", Value: 7},
			{Action: ActionSelect, Target: "Mode", Value: "Fullscreen"},
		},
	}
	if diff := cmp.Diff(want, sc); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown kind",
			yaml:    `fields: [{name: A, kind: slider}]`,
			wantErr: `unknown kind "slider"`,
		},
		{
			name:    "missing name",
			yaml:    `fields: [{kind: int}]`,
			wantErr: "int needs a name",
		},
		{
			name:    "choice without items",
			yaml:    `fields: [{name: Mode, kind: enum}]`,
			wantErr: `enum "Mode" needs items`,
		},
		{
			name:    "duplicate name",
			yaml:    `fields: [{name: A, kind: int}, {name: A, kind: text}]`,
			wantErr: `duplicate name "A"`,
		},
		{
			name:    "unknown target",
			yaml:    `
fields: [{name: A, kind: int}]
steps: [{action: type, target: B, value: 1}]`,
			wantErr: `unknown target "B"`,
		},
		{
			name:    "unknown action",
			yaml:    `
fields: [{name: A, kind: int}]
steps: [{action: drag, target: A}]`,
			wantErr: `unknown action "drag"`,
		},
		{
			name:    "wrong action for kind",
			yaml:    `
fields: [{name: Go, kind: button}]
steps: [{action: type, target: Go, value: x}]`,
			wantErr: "cannot type a button field",
		},
		{
			name: "unnamed separators",
			yaml: `fields: [{kind: separator}, {kind: space}, {kind: line}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/tools/inspector/v2\n\ngo 1.24\n")
	path := filepath.Join(dir, "scenarios", "form.yaml")
	writeFile(t, path, `
theme: ../themes/dark.yaml
fields: [{name: A, kind: int}]
`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(dir, "themes", "dark.yaml"); sc.Theme != want {
		t.Errorf("Theme = %q, want %q", sc.Theme, want)
	}
	if sc.Title != "inspector" {
		t.Errorf("Title = %q, want inspector", sc.Title)
	}
}

func TestLoadErrorsAreConfigErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, `fields: [{name: A, kind: nope}]`)

	for _, p := range []string{path, filepath.Join(dir, "missing.yaml")} {
		_, err := Load(p)
		var uiErr *errors.UIError
		if !stderrors.As(err, &uiErr) || uiErr.Kind != errors.KindConfig {
			t.Errorf("Load(%s) error = %v, want a config UIError", filepath.Base(p), err)
		}
	}
}

func TestDefaultTitleWithoutModule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := FindModuleRoot(dir); err != nil {
		if got := DefaultTitle(dir); got != "demo" {
			t.Errorf("DefaultTitle() = %q, want demo", got)
		}
	}
}

func TestTitleFromModule(t *testing.T) {
	tests := []struct {
		module string
		want   string
	}{
		{"example.com/app", "app"},
		{"example.com/app/v3", "app"},
		{"github.com/go-drift/immediate", "immediate"},
		{"local", "local"},
	}
	for _, tt := range tests {
		if got := titleFromModule(tt.module, "/tmp/dir"); got != tt.want {
			t.Errorf("titleFromModule(%q) = %q, want %q", tt.module, got, tt.want)
		}
	}
}
