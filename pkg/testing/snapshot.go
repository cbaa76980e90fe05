package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/immediate/pkg/retained"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the structure of the retained tree.
type Snapshot struct {
	Tree *SnapshotNode `json:"tree"`
}

// SnapshotNode represents an element in the serialized tree. IDs count
// elements per role in traversal order, so they are stable across runs even
// though handles are not.
type SnapshotNode struct {
	ID       string          `json:"id"`
	Role     string          `json:"role"`
	Name     string          `json:"name,omitempty"`
	Text     string          `json:"text,omitempty"`
	Value    any             `json:"value,omitempty"`
	Items    []string        `json:"items,omitempty"`
	Props    map[string]any  `json:"props,omitempty"`
	Children []*SnapshotNode `json:"children,omitempty"`
}

// CaptureSnapshot captures the live elements under the surface.
func (t *Tester) CaptureSnapshot() *Snapshot {
	counter := &roleCounter{}
	return &Snapshot{Tree: captureNode(t.mem, t.surface, counter)}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// IMMEDIATE_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("IMMEDIATE_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: IMMEDIATE_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: IMMEDIATE_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a diff between other (expected) and this snapshot. Returns
// empty string if equal. Both sides are compared in their JSON form so that
// a snapshot loaded from disk matches one captured in memory.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, err := normalize(s)
	if err != nil {
		return err.Error()
	}
	b, err := normalize(other)
	if err != nil {
		return err.Error()
	}
	return cmp.Diff(b, a)
}

// --- Internal ---

// roleCounter assigns stable IDs like "button#0", "button#1".
type roleCounter struct {
	counts map[string]int
}

func (c *roleCounter) next(role string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[role]
	c.counts[role] = n + 1
	return fmt.Sprintf("%s#%d", role, n)
}

func captureNode(mem *retained.Memory, h retained.Handle, counter *roleCounter) *SnapshotNode {
	n, ok := mem.Node(h)
	if !ok {
		return nil
	}
	role := n.Spec.Role.String()
	node := &SnapshotNode{
		ID:    counter.next(role),
		Role:  role,
		Name:  n.Spec.Name,
		Text:  n.Text,
		Value: n.Value,
		Items: n.Items,
	}
	if props := captureProps(n); len(props) > 0 {
		node.Props = props
	}
	for _, c := range mem.Children(h) {
		if !mem.Alive(c) {
			continue
		}
		if child := captureNode(mem, c, counter); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func captureProps(n *retained.MemoryNode) map[string]any {
	props := make(map[string]any)
	if n.FontSize != 0 {
		props["fontSize"] = n.FontSize
	}
	if n.Image != "" {
		props["image"] = n.Image
	}
	if !n.Interactable {
		props["interactable"] = false
	}
	if !n.Valid {
		props["valid"] = false
	}
	layout := map[string]*float32{
		"flexibleWidth":   n.Layout.FlexibleWidth,
		"flexibleHeight":  n.Layout.FlexibleHeight,
		"minWidth":        n.Layout.MinWidth,
		"minHeight":       n.Layout.MinHeight,
		"preferredWidth":  n.Layout.PreferredWidth,
		"preferredHeight": n.Layout.PreferredHeight,
	}
	for key, v := range layout {
		if v != nil {
			props[key] = *v
		}
	}
	return props
}

// normalize round-trips a snapshot through JSON into generic values.
func normalize(s *Snapshot) (any, error) {
	data, err := marshalSnapshot(s)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
