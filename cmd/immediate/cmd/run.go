package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/immediate/cmd/immediate/internal/config"
	"github.com/go-drift/immediate/cmd/immediate/internal/session"
	"github.com/go-drift/immediate/pkg/retained"
	"github.com/go-drift/immediate/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a scenario file",
		Long: `Replay a scenario through the immediate-mode builder.

A scenario lists the fields drawn every frame and the interactions to
simulate on the retained elements. One frame is drawn before the first
step and after every step. The final field values are printed.

Flags:
  --dump          Print the retained element tree after the last frame
  --theme FILE    Use a theme file (overrides the scenario's theme)

Example scenario:
  title: Player
  fields:
    - {name: Name, kind: text, value: ada}
    - {name: Volume, kind: int, value: 5}
    - {name: Mode, kind: popup, items: [Windowed, Fullscreen]}
  steps:
    - {action: submit, target: Volume, value: 7}
    - {action: select, target: Mode, value: Fullscreen}`,
		Usage: "immediate run [--dump] [--theme FILE] <scenario.yaml>",
		Run:   runRun,
	})
}

type runOptions struct {
	dump  bool
	theme string
}

func parseRunArgs(args []string) ([]string, runOptions, error) {
	opts := runOptions{}
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--dump":
			opts.dump = true
		case arg == "--theme":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--theme requires a file path")
			}
			opts.theme = args[i+1]
			i++
		case strings.HasPrefix(arg, "--theme="):
			opts.theme = strings.TrimPrefix(arg, "--theme=")
		case strings.HasPrefix(arg, "--"):
			return nil, opts, fmt.Errorf("unknown flag %s", arg)
		default:
			filtered = append(filtered, arg)
		}
	}
	return filtered, opts, nil
}

func runRun(args []string) error {
	files, opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return fmt.Errorf("exactly one scenario file is required\n\nUsage: immediate run [--dump] [--theme FILE] <scenario.yaml>")
	}

	sc, err := config.Load(files[0])
	if err != nil {
		return err
	}
	themePath := sc.Theme
	if opts.theme != "" {
		themePath = opts.theme
	}
	th := theme.Default()
	if themePath != "" {
		if th, err = theme.Load(themePath); err != nil {
			return err
		}
	}

	s, err := session.New(sc, th)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		return err
	}
	for i, st := range sc.Steps {
		if err := s.Apply(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	printResults(sc, s)
	if opts.dump {
		fmt.Fprintln(stdout)
		return retained.Dump(stdout, s.Memory(), s.Surface())
	}
	return nil
}

func printResults(sc *config.Scenario, s *session.Session) {
	r := lipgloss.NewRenderer(stdout)
	heading := r.NewStyle().Bold(true).Underline(true)
	name := r.NewStyle().Foreground(lipgloss.Color("69"))
	muted := r.NewStyle().Foreground(lipgloss.Color("244"))

	results := s.Results()
	width := 0
	for _, res := range results {
		width = max(width, len(res.Name))
	}

	fmt.Fprintln(stdout, heading.Render(sc.Title))
	fmt.Fprintln(stdout, muted.Render(fmt.Sprintf("%d steps, %d frames with edits", len(sc.Steps), s.Changes())))
	label := func(text string) string {
		return name.Render(text) + strings.Repeat(" ", max(width-len(text), 0))
	}
	for _, res := range results {
		fmt.Fprintf(stdout, "  %s  %s %s\n", label(res.Name), res.Value, muted.Render("("+res.Kind+")"))
	}
	for _, f := range sc.Fields {
		if f.Kind == config.KindButton {
			fmt.Fprintf(stdout, "  %s  pressed %d times\n", label(f.Name), s.Presses(f.Name))
		}
	}
}
