// Package drafts talks to the Drafts app through osascript.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nerveband/drafts-cli/internal/exec"
)

var log = logrus.WithField("component", "drafts")

// ErrNotFound is returned by Get when no draft has the requested uuid.
var ErrNotFound = errors.New("draft not found")

// ErrNoHost is returned when the script host is not installed, which is
// the case everywhere but macOS.
var ErrNoHost = errors.New("osascript not found (Drafts scripting needs macOS)")

// ScriptError reports a failed osascript call.
type ScriptError struct {
	Op  string
	Err error
}

func (e *ScriptError) Error() string { return fmt.Sprintf("drafts %s: %v", e.Op, e.Err) }
func (e *ScriptError) Unwrap() error { return e.Err }

type QueryOptions struct {
	Tags           []string
	OmitTags       []string
	Sort           Sort
	SortDescending bool
	FlaggedToTop   bool
}

type CreateOptions struct {
	Tags    []string
	Folder  Folder
	Flagged bool
	Action  string
}

type ModifyOptions struct {
	Tags   []string
	Action string
}

// Client runs Drafts scripts through a Runner.
type Client struct {
	Runner exec.Runner
	// Binary defaults to "osascript".
	Binary string
}

func NewClient(r exec.Runner) *Client {
	return &Client{Runner: r, Binary: "osascript"}
}

func (c *Client) bin() string {
	if c.Binary == "" {
		return "osascript"
	}
	return c.Binary
}

func (c *Client) run(ctx context.Context, op string, args ...string) ([]byte, error) {
	if _, err := c.Runner.LookPath(c.bin()); err != nil {
		return nil, &ScriptError{Op: op, Err: fmt.Errorf("%w: %v", ErrNoHost, err)}
	}
	out, err := c.Runner.Run(ctx, c.bin(), args...)
	if err != nil {
		return nil, &ScriptError{Op: op, Err: err}
	}
	return out, nil
}

func (c *Client) appleScript(ctx context.Context, op, script string) (string, error) {
	out, err := c.run(ctx, op, "-e", script)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) jxa(ctx context.Context, op, script string, args ...string) ([]byte, error) {
	argv := append([]string{"-l", "JavaScript", "-e", script}, args...)
	return c.run(ctx, op, argv...)
}

// Query returns the drafts in filter whose content contains text (case
// insensitive; empty matches everything). A host that reports nothing
// yields an empty slice, not an error.
func (c *Client) Query(ctx context.Context, text string, filter Filter, opt QueryOptions) ([]Draft, error) {
	out, err := c.jxa(ctx, "query", queryScript)
	if err != nil {
		return nil, err
	}
	all, err := DecodeRecords(out)
	if err != nil {
		return nil, &ScriptError{Op: "query", Err: err}
	}

	needle := strings.ToLower(text)
	ds := make([]Draft, 0, len(all))
	for _, d := range all {
		if !filter.Match(d) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(d.Content), needle) {
			continue
		}
		if !matchTags(d, opt.Tags, opt.OmitTags) {
			continue
		}
		ds = append(ds, d)
	}
	sortDrafts(ds, opt)

	log.WithFields(logrus.Fields{"filter": filter, "matched": len(ds), "scanned": len(all)}).Debug("query")
	return ds, nil
}

// sortDrafts orders by creation or modification time. Access times are not
// scriptable, so SortAccessed keeps the app's order.
func sortDrafts(ds []Draft, opt QueryOptions) {
	var key func(Draft) int64
	switch opt.Sort {
	case SortCreated:
		key = func(d Draft) int64 { return d.created().UnixNano() }
	case SortModified:
		key = func(d Draft) int64 { return d.modified().UnixNano() }
	}
	if key != nil {
		sort.SliceStable(ds, func(i, j int) bool {
			if opt.SortDescending {
				return key(ds[i]) > key(ds[j])
			}
			return key(ds[i]) < key(ds[j])
		})
	} else if opt.SortDescending {
		for i, j := 0, len(ds)-1; i < j; i, j = i+1, j-1 {
			ds[i], ds[j] = ds[j], ds[i]
		}
	}
	if opt.FlaggedToTop {
		sort.SliceStable(ds, func(i, j int) bool {
			return ds[i].IsFlagged && !ds[j].IsFlagged
		})
	}
}

// matchTags reports whether d carries every tag in required and none in
// omitted.
func matchTags(d Draft, required, omitted []string) bool {
	for _, t := range required {
		if !d.HasTag(t) {
			return false
		}
	}
	for _, t := range omitted {
		if d.HasTag(t) {
			return false
		}
	}
	return true
}

// Get returns the draft with uuid, or ErrNotFound.
func (c *Client) Get(ctx context.Context, uuid string) (*Draft, error) {
	out, err := c.jxa(ctx, "get", getScript, uuid)
	if err != nil {
		return nil, err
	}
	d, err := DecodeRecord(out)
	if err != nil {
		return nil, &ScriptError{Op: "get", Err: err}
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uuid)
	}
	return d, nil
}

// Create makes a new draft and returns its uuid.
func (c *Client) Create(ctx context.Context, text string, opt CreateOptions) (string, error) {
	uuid, err := c.appleScript(ctx, "create", createScript(text, opt))
	if err != nil {
		return "", err
	}
	if uuid == "" {
		return "", &ScriptError{Op: "create", Err: errors.New("no draft id returned")}
	}
	if opt.Action != "" {
		if err := c.RunAction(ctx, opt.Action, uuid); err != nil {
			return uuid, err
		}
	}
	return uuid, nil
}

func (c *Client) Prepend(ctx context.Context, uuid, text string, opt ModifyOptions) error {
	if _, err := c.appleScript(ctx, "prepend", prependScript(uuid, text)); err != nil {
		return err
	}
	return c.afterModify(ctx, uuid, opt)
}

func (c *Client) Append(ctx context.Context, uuid, text string, opt ModifyOptions) error {
	if _, err := c.appleScript(ctx, "append", appendScript(uuid, text)); err != nil {
		return err
	}
	return c.afterModify(ctx, uuid, opt)
}

func (c *Client) afterModify(ctx context.Context, uuid string, opt ModifyOptions) error {
	if err := c.Tag(ctx, uuid, opt.Tags...); err != nil {
		return err
	}
	if opt.Action != "" {
		return c.RunAction(ctx, opt.Action, uuid)
	}
	return nil
}

func (c *Client) Replace(ctx context.Context, uuid, text string) error {
	_, err := c.appleScript(ctx, "replace", replaceScript(uuid, text))
	return err
}

func (c *Client) Trash(ctx context.Context, uuid string) error {
	_, err := c.appleScript(ctx, "trash", trashScript(uuid))
	return err
}

func (c *Client) Archive(ctx context.Context, uuid string) error {
	_, err := c.appleScript(ctx, "archive", archiveScript(uuid))
	return err
}

// Tag adds tags a draft does not have yet. No tags is a no-op.
func (c *Client) Tag(ctx context.Context, uuid string, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}
	_, err := c.appleScript(ctx, "tag", tagScript(uuid, tags))
	return err
}

// Select opens the draft in the app, making it the active draft.
func (c *Client) Select(ctx context.Context, uuid string) error {
	_, err := c.appleScript(ctx, "select", selectScript(uuid))
	return err
}

// Active returns the uuid of the draft open in the app.
func (c *Client) Active(ctx context.Context) (string, error) {
	uuid, err := c.appleScript(ctx, "active", activeScript)
	if err != nil {
		return "", err
	}
	if uuid == "" {
		return "", ErrNotFound
	}
	return uuid, nil
}

// RunAction performs the named Drafts action on a draft.
func (c *Client) RunAction(ctx context.Context, action, uuid string) error {
	_, err := c.appleScript(ctx, "action", actionScript(action, uuid))
	return err
}
