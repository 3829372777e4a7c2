package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"regexp"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/nerveband/drafts-cli/internal/drafts"
)

var linebreakRegex = regexp.MustCompile(`\n+`)

func newNewCmd(a *app) *cobra.Command {
	var (
		tags    []string
		archive bool
		flagged bool
		action  string
	)
	cmd := &cobra.Command{
		Use:   "new [MESSAGE]",
		Short: "Create a new draft (omit MESSAGE to read stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := orStdin(cmd, firstArg(args))
			if err != nil {
				return err
			}
			opt := drafts.CreateOptions{Tags: tags, Flagged: flagged, Action: action}
			if archive {
				opt.Folder = drafts.FolderArchive
			}
			uuid, err := a.client.Create(cmd.Context(), text, opt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uuid)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Tag (repeatable)")
	cmd.Flags().BoolVarP(&archive, "archive", "a", false, "Create draft in archive")
	cmd.Flags().BoolVarP(&flagged, "flagged", "f", false, "Create flagged draft")
	cmd.Flags().StringVar(&action, "action", "", "Run this action on the new draft")
	return cmd
}

// newModifyCmd builds prepend and append, which share their flags.
func newModifyCmd(a *app, use, short string, modify func(*app, *cobra.Command, string, string, drafts.ModifyOptions) error) *cobra.Command {
	var (
		uuid   string
		tags   []string
		action string
	)
	cmd := &cobra.Command{
		Use:   use + " [MESSAGE]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := orStdin(cmd, firstArg(args))
			if err != nil {
				return err
			}
			id, err := a.orActive(cmd.Context(), uuid)
			if err != nil {
				return err
			}
			if err := modify(a, cmd, id, text, drafts.ModifyOptions{Tags: tags, Action: action}); err != nil {
				return err
			}
			return a.printContent(cmd, id)
		},
	}
	cmd.Flags().StringVarP(&uuid, "uuid", "u", "", "UUID (omit to use active draft)")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Add tag (repeatable)")
	cmd.Flags().StringVar(&action, "action", "", "Run this action afterwards")
	return cmd
}

func newPrependCmd(a *app) *cobra.Command {
	return newModifyCmd(a, "prepend", "Prepend to a draft", func(a *app, cmd *cobra.Command, id, text string, opt drafts.ModifyOptions) error {
		return a.client.Prepend(cmd.Context(), id, text, opt)
	})
}

func newAppendCmd(a *app) *cobra.Command {
	return newModifyCmd(a, "append", "Append to a draft", func(a *app, cmd *cobra.Command, id, text string, opt drafts.ModifyOptions) error {
		return a.client.Append(cmd.Context(), id, text, opt)
	})
}

func newReplaceCmd(a *app) *cobra.Command {
	var uuid string
	cmd := &cobra.Command{
		Use:   "replace [MESSAGE]",
		Short: "Replace the content of a draft",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := orStdin(cmd, firstArg(args))
			if err != nil {
				return err
			}
			id, err := a.orActive(cmd.Context(), uuid)
			if err != nil {
				return err
			}
			if err := a.client.Replace(cmd.Context(), id, text); err != nil {
				return err
			}
			return a.printContent(cmd, id)
		},
	}
	cmd.Flags().StringVarP(&uuid, "uuid", "u", "", "UUID (omit to use active draft)")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [UUID]",
		Short: "Edit a draft in $EDITOR",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.orActive(ctx, firstArg(args))
			if err != nil {
				return err
			}
			d, err := a.client.Get(ctx, id)
			if err != nil {
				return err
			}
			text, err := editor(d.Content)
			if err != nil {
				return err
			}
			if err := a.client.Replace(ctx, id, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

// editor opens text in $EDITOR (vi by default) and returns the saved result.
func editor(text string) (string, error) {
	f, err := os.CreateTemp("", "draft-*.md")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", err
	}
	f.Close()

	name := os.Getenv("EDITOR")
	if name == "" {
		name = "vi"
	}
	c := osexec.Command(name, f.Name())
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	b, err := os.ReadFile(f.Name())
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

func newGetCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		qr     bool
	)
	cmd := &cobra.Command{
		Use:   "get [UUID]",
		Short: "Get the content of a draft (omit UUID to use active draft)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id, err := a.orActive(ctx, firstArg(args))
			if err != nil {
				return err
			}
			d, err := a.client.Get(ctx, id)
			if err != nil && !(asJSON && errors.Is(err, drafts.ErrNotFound)) {
				return err
			}

			switch {
			case asJSON:
				params, err := drafts.EmitGet(d)
				if err != nil {
					return err
				}
				res, ok := params.Result()
				if !ok {
					res = "null"
				}
				fmt.Fprintln(out, res)
			case qr:
				if d.Permalink == "" {
					return fmt.Errorf("draft %s has no permalink", id)
				}
				code, err := qrcode.New(d.Permalink, qrcode.Medium)
				if err != nil {
					return fmt.Errorf("qr code: %w", err)
				}
				fmt.Fprint(out, code.ToSmallString(false))
				fmt.Fprintln(out, d.Permalink)
			default:
				fmt.Fprintln(out, d.Content)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full record as JSON (null when missing)")
	cmd.Flags().BoolVar(&qr, "qr", false, "Print a QR code of the draft permalink")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		filter  string
		query   string
		tags    []string
		omit    []string
		sortKey string
		desc    bool
		flagTop bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := drafts.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := drafts.ParseSort(sortKey)
			if err != nil {
				return err
			}
			ds, err := a.client.Query(cmd.Context(), query, f, drafts.QueryOptions{
				Tags:           tags,
				OmitTags:       omit,
				Sort:           s,
				SortDescending: desc,
				FlaggedToTop:   flagTop,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				params, err := drafts.EmitQuery(ds)
				if err != nil {
					return err
				}
				// No result prints nothing.
				if res, ok := params.Result(); ok {
					fmt.Fprintln(out, res)
				}
				return nil
			}
			for _, d := range ds {
				fmt.Fprintf(out, "%s\t%s\n", d.UUID, listLine(d.Content))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "inbox", "Filter: inbox|flagged|archive|trash|all")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only drafts containing this text")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Require tag (repeatable)")
	cmd.Flags().StringArrayVar(&omit, "omit", nil, "Exclude tag (repeatable)")
	cmd.Flags().StringVar(&sortKey, "sort", "created", "Sort: created|modified|accessed")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&flagTop, "flagged-first", false, "Put flagged drafts first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON (nothing when empty)")
	return cmd
}

// listLine is the first line of content, cut to 80 columns.
func listLine(content string) string {
	first := []rune(linebreakRegex.Split(content, 2)[0])
	if len(first) > 80 {
		return string(first[:77]) + "..."
	}
	return string(first)
}

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select [UUID]",
		Short: "Open a draft in Drafts, making it active (omit UUID to pick from the inbox)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uuid := firstArg(args)
			if uuid == "" {
				picked, err := a.pickDraft(cmd.Context())
				if err != nil {
					return err
				}
				uuid = picked
			}
			if err := a.client.Select(cmd.Context(), uuid); err != nil {
				return err
			}
			return a.printContent(cmd, uuid)
		},
	}
}

func newActiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Print the UUID of the active draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uuid, err := a.client.Active(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uuid)
			return nil
		},
	}
}

func newTrashCmd(a *app) *cobra.Command {
	return newMoveCmd(a, "trash", "Move a draft to the trash", a.client.Trash)
}

func newArchiveCmd(a *app) *cobra.Command {
	return newMoveCmd(a, "archive", "Move a draft to the archive", a.client.Archive)
}

func newMoveCmd(a *app, use, short string, move func(ctx context.Context, uuid string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [UUID]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.orActive(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			if err := move(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newTagCmd(a *app) *cobra.Command {
	var uuid string
	cmd := &cobra.Command{
		Use:   "tag TAG...",
		Short: "Add tags to a draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.orActive(cmd.Context(), uuid)
			if err != nil {
				return err
			}
			if err := a.client.Tag(cmd.Context(), id, args...); err != nil {
				return err
			}
			d, err := a.client.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(d.Tags, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&uuid, "uuid", "u", "", "UUID (omit to use active draft)")
	return cmd
}

func (a *app) printContent(cmd *cobra.Command, uuid string) error {
	d, err := a.client.Get(cmd.Context(), uuid)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), d.Content)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
