package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nerveband/drafts-cli/internal/drafts"
	"github.com/nerveband/drafts-cli/internal/picker"
	"github.com/nerveband/drafts-cli/internal/ui"
)

// pickDraft lets the user choose an inbox draft, through fzf when it is
// installed and a built-in list otherwise.
func (a *app) pickDraft(ctx context.Context) (string, error) {
	ds, err := a.client.Query(ctx, "", drafts.FilterInbox, drafts.QueryOptions{})
	if err != nil {
		return "", err
	}
	if len(ds) == 0 {
		return "", errors.New("inbox is empty")
	}

	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = drafts.PickerLine(d)
	}

	if _, err := a.runner.LookPath("fzf"); err == nil {
		out, err := a.runner.RunInput(ctx, strings.NewReader(strings.Join(lines, "\n")+"\n"), "fzf", "--no-sort", "--prompt", "draft> ")
		if err != nil {
			return "", fmt.Errorf("fzf: %w", err)
		}
		return drafts.PickedUUID(string(out))
	}

	if !ui.IsTTY(os.Stdout) {
		return "", errors.New("fzf not found and stdout is not a terminal: pass a UUID")
	}
	items := make([]picker.Item, len(ds))
	for i, d := range ds {
		items[i] = picker.Item{ID: d.UUID, Label: lines[i]}
	}
	return picker.Run("Inbox", items)
}
