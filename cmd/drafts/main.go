package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/nerveband/drafts-cli/internal/exec"
	"github.com/nerveband/drafts-cli/internal/system"
)

func main() {
	// Raise the open-file limit for the frame pipeline (macOS/Linux)
	system.InitResourceLimits()

	if err := newRootCmd(&app{runner: exec.RealRunner{}}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("[-]"), err)
		os.Exit(1)
	}
}
