// Command immediate replays scripted sessions through the immediate-mode
// builder.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/immediate/cmd/immediate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
