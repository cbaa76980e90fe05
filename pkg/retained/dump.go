package retained

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type dumpStyles struct {
	role    lipgloss.Style
	name    lipgloss.Style
	value   lipgloss.Style
	invalid lipgloss.Style
	muted   lipgloss.Style
}

func newDumpStyles(w io.Writer) dumpStyles {
	r := lipgloss.NewRenderer(w)
	return dumpStyles{
		role:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		name:    r.NewStyle().Foreground(lipgloss.Color("230")),
		value:   r.NewStyle().Foreground(lipgloss.Color("42")),
		invalid: r.NewStyle().Foreground(lipgloss.Color("196")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Dump writes the subtree rooted at root as an indented tree.
func Dump(w io.Writer, m *Memory, root Handle) error {
	st := newDumpStyles(w)
	var sb strings.Builder
	dumpNode(&sb, st, m, root, "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpNode(sb *strings.Builder, st dumpStyles, m *Memory, h Handle, prefix, branch string) {
	n, ok := m.nodes[h]
	if !ok {
		return
	}
	sb.WriteString(prefix)
	sb.WriteString(branch)
	sb.WriteString(st.role.Render(n.Spec.Role.String()))
	sb.WriteString(" ")
	sb.WriteString(st.name.Render(fmt.Sprintf("%q", n.Spec.Name)))
	sb.WriteString(st.muted.Render(fmt.Sprintf(" #%d", h)))
	if n.Text != "" {
		sb.WriteString(" text=")
		sb.WriteString(st.value.Render(fmt.Sprintf("%q", n.Text)))
	}
	if n.Value != nil {
		style := st.value
		if !n.Valid {
			style = st.invalid
		}
		sb.WriteString(" value=")
		sb.WriteString(style.Render(fmt.Sprintf("%v", n.Value)))
	}
	if len(n.Items) > 0 {
		sb.WriteString(" items=")
		sb.WriteString(st.muted.Render(strings.Join(n.Items, "|")))
	}
	if !n.Valid {
		sb.WriteString(" ")
		sb.WriteString(st.invalid.Render("invalid"))
	}
	if !n.Interactable {
		sb.WriteString(" ")
		sb.WriteString(st.muted.Render("disabled"))
	}
	sb.WriteString("\n")

	childPrefix := prefix
	switch branch {
	case "├─ ":
		childPrefix += "│  "
	case "└─ ":
		childPrefix += "   "
	}
	for i, c := range n.Children {
		b := "├─ "
		if i == len(n.Children)-1 {
			b = "└─ "
		}
		dumpNode(sb, st, m, c, childPrefix, b)
	}
}
