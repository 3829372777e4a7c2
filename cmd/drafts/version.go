package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const (
	repoOwner = "nerveband"
	repoName  = "drafts-cli"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information for this binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"name":    "drafts",
				"version": version,
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "drafts %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")
	return cmd
}

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current version: %s\nChecking for updates...\n", version)

			source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
			if err != nil {
				return fmt.Errorf("failed to create update source: %w", err)
			}
			updater, err := selfupdate.NewUpdater(selfupdate.Config{
				Source:    source,
				Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
			})
			if err != nil {
				return fmt.Errorf("failed to create updater: %w", err)
			}

			latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			if !found {
				fmt.Fprintln(out, "No releases found")
				return nil
			}
			if latest.LessOrEqual(version) {
				fmt.Fprintf(out, "Already up to date (latest: %s)\n", latest.Version())
				return nil
			}

			fmt.Fprintf(out, "New version available: %s\nDownloading for %s/%s...\n", latest.Version(), runtime.GOOS, runtime.GOARCH)
			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %w", err)
			}
			if err := updater.UpdateTo(ctx, latest, exe); err != nil {
				return fmt.Errorf("failed to update: %w", err)
			}
			fmt.Fprintf(out, "Successfully upgraded to %s\n", latest.Version())
			return nil
		},
	}
}
