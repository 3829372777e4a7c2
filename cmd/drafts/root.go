package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nerveband/drafts-cli/internal/drafts"
	"github.com/nerveband/drafts-cli/internal/exec"
	"github.com/nerveband/drafts-cli/internal/ui"
)

// version is set at build time via ldflags
var version = "0.3.0"

// app carries what the commands share. Tests swap the runner.
type app struct {
	runner  exec.Runner
	client  *drafts.Client
	verbose bool
	logJSON bool
}

func newRootCmd(a *app) *cobra.Command {
	if a.client == nil {
		a.client = drafts.NewClient(a.runner)
	}

	root := &cobra.Command{
		Use:           "drafts",
		Short:         "Edit your Drafts from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd.ErrOrStderr(), a.verbose, a.logJSON)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Log as JSON")

	root.AddCommand(
		newNewCmd(a),
		newPrependCmd(a),
		newAppendCmd(a),
		newReplaceCmd(a),
		newEditCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newSelectCmd(a),
		newActiveCmd(a),
		newTrashCmd(a),
		newArchiveCmd(a),
		newTagCmd(a),
		newDemoCmd(a),
		newVersionCmd(),
		newUpgradeCmd(),
	)

	return root
}

func configureLogging(w io.Writer, verbose, asJSON bool) {
	logrus.SetOutput(w)
	if asJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// orStdin returns text, or everything on stdin when text is empty.
func orStdin(cmd *cobra.Command, text string) (string, error) {
	if text != "" {
		return text, nil
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && ui.IsTTY(f) {
		return "", fmt.Errorf("no text given and stdin is a terminal")
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

// orActive returns uuid, or the draft open in the app when uuid is empty.
func (a *app) orActive(ctx context.Context, uuid string) (string, error) {
	if uuid != "" {
		return uuid, nil
	}
	active, err := a.client.Active(ctx)
	if err != nil {
		return "", fmt.Errorf("no uuid given and no active draft: %w", err)
	}
	return active, nil
}
