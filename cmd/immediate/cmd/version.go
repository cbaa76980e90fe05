package cmd

import (
	"fmt"
	"runtime/debug"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  `Print the CLI version, build time and the Go toolchain it was built with.`,
		Usage: "immediate version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}

func printVersion() {
	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	fmt.Fprintf(stdout, "immediate CLI version %s (built %s, %s)\n", Version, BuildTime, goVersion)
}
