package cmd

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "theme",
		Short: "Validate a theme file",
		Long: `Load a theme file, check its schema version and sizes, load its
fonts and print the resulting metrics.

Without a file the built-in theme is described.`,
		Usage: "immediate theme [<theme.yaml>]",
		Run:   runTheme,
	})
}

func runTheme(args []string) error {
	th := theme.Default()
	source := "built-in"
	switch len(args) {
	case 0:
	case 1:
		var err error
		if th, err = theme.Load(args[0]); err != nil {
			return err
		}
		source = args[0]
	default:
		return fmt.Errorf("at most one theme file is accepted")
	}

	res := th.Resources()
	for _, role := range []theme.FontRole{theme.FontContent, theme.FontTitle, theme.FontTabs, theme.FontMonospace} {
		if _, err := res.Face(role, 0); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
	}

	fmt.Fprintf(stdout, "Theme %s (version %s)\n", source, th.Version)
	fmt.Fprintf(stdout, "  font size        %d (line %g px with margins)\n", th.FontSize, th.FontSizeWithMargins())
	fmt.Fprintf(stdout, "  title font size  %d\n", th.TitleFontSize)
	fmt.Fprintf(stdout, "  content line     %g px\n", res.LineHeight(theme.FontContent, th.FontSize))
	fmt.Fprintf(stdout, "  sample button    %g px wide\n", res.MeasureText(theme.FontContent, th.FontSize, "Apply")+th.ButtonPadding)
	fmt.Fprintf(stdout, "  fonts loaded     %d\n", res.Loaded())
	return nil
}
