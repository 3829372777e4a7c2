package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerveband/drafts-cli/internal/director"
	"github.com/nerveband/drafts-cli/internal/exec"
	"github.com/nerveband/drafts-cli/internal/timeline"
)

// run executes the CLI against a mock runner answering every script with out.
func run(t *testing.T, out string, args ...string) (string, *exec.MockRunner, error) {
	t.Helper()
	m := &exec.MockRunner{
		RunFunc: func(string, ...string) ([]byte, error) { return []byte(out), nil },
	}
	root := newRootCmd(&app{runner: m})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), m, err
}

const twoDrafts = `[
  {"uuid":"A","content":"first line\n\nmore","tags":[],"isFlagged":false,"isArchived":false,"isTrashed":false,"createdAt":"2024-01-01T00:00:00Z","modifiedAt":"2024-01-01T00:00:00Z"},
  {"uuid":"B","content":"second","tags":["work"],"isFlagged":false,"isArchived":false,"isTrashed":false,"createdAt":"2024-02-01T00:00:00Z","modifiedAt":"2024-02-01T00:00:00Z"}
]`

func TestListPlain(t *testing.T) {
	out, _, err := run(t, twoDrafts, "list")
	require.NoError(t, err)
	assert.Equal(t, "A\tfirst line\nB\tsecond\n", out)
}

func TestListJSONEmptyPrintsNothing(t *testing.T) {
	out, _, err := run(t, "null", "list", "--json")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = run(t, twoDrafts, "list", "--json", "-t", "work")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0]["uuid"])
}

func TestListRejectsUnknownFilter(t *testing.T) {
	_, _, err := run(t, twoDrafts, "list", "-f", "starred")
	assert.Error(t, err)
}

func TestListLineTruncates(t *testing.T) {
	long := strings.Repeat("é", 100)
	line := listLine(long + "\nsecond")
	assert.Equal(t, 80, len([]rune(line)))
	assert.True(t, strings.HasSuffix(line, "..."))
	assert.Equal(t, "short", listLine("short\n\nbody"))
}

func TestGetJSONMissingPrintsNull(t *testing.T) {
	out, _, err := run(t, "null", "get", "--json", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)

	_, _, err = run(t, "null", "get", "NOPE")
	assert.Error(t, err)
}

func TestGetQR(t *testing.T) {
	rec := `{"uuid":"A","content":"x","permalink":"drafts://open?uuid=A"}`
	out, _, err := run(t, rec, "get", "--qr", "A")
	require.NoError(t, err)
	assert.Contains(t, out, "drafts://open?uuid=A")
	assert.Greater(t, strings.Count(out, "\n"), 10)
}

func TestNewFromArgs(t *testing.T) {
	out, m, err := run(t, "UUID-1", "new", "hello", "-t", "work", "-f")
	require.NoError(t, err)
	assert.Equal(t, "UUID-1\n", out)
	last, _ := m.Last()
	assert.Contains(t, last.Args[1], `content:"hello", flagged:true, tags:{"work"}`)
}

func TestAppendUsesActiveDraft(t *testing.T) {
	m := &exec.MockRunner{
		RunFunc: func(name string, args ...string) ([]byte, error) {
			script := args[len(args)-1]
			if len(args) > 2 && args[1] == "JavaScript" {
				return []byte(`{"uuid":"ACTIVE","content":"a\nb"}`), nil
			}
			if strings.Contains(script, "current draft") {
				return []byte("ACTIVE"), nil
			}
			return nil, nil
		},
	}
	root := newRootCmd(&app{runner: m})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"append", "b"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "a\nb\n", stdout.String())
	require.Len(t, m.Calls, 3)
	assert.Contains(t, m.Calls[1].Args[1], `draft id "ACTIVE"`)
}

func TestDemoState(t *testing.T) {
	out, _, err := run(t, "", "demo", "state", "65", "0:1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var st timeline.PresentationState
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &st))
	assert.Equal(t, 1, st.SceneIndex)
	assert.Equal(t, 5, st.LocalFrame)
}

func TestParseFrames(t *testing.T) {
	ranges, err := parseFrames([]string{"3", "10:12"})
	require.NoError(t, err)
	assert.Equal(t, []frameRange{{3, 3}, {10, 12}}, ranges)

	ranges, err = parseFrames([]string{"0:9999999999"})
	require.NoError(t, err)
	assert.Equal(t, []frameRange{{0, 9999999999}}, ranges)

	for _, bad := range []string{"x", "-1", "5:2"} {
		_, err := parseFrames([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestStoryboardInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sb", "demo.yaml")
	_, _, err := run(t, "", "demo", "storyboard", "init", "-o", path)
	require.NoError(t, err)

	sb, err := director.ReadStoryboard(path)
	require.NoError(t, err)
	assert.Len(t, sb.Scenes, 4)

	out, _, err := run(t, "", "demo", "storyboard", "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "60 per scene")
	assert.Contains(t, out, "drafts get 574FEA89")
}

func TestStoryboardGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	_, _, err := run(t, "", "demo", "storyboard", "generate", "-o", path, "-c", "drafts list", "-c", "drafts new hi")
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := run(t, "", "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version, info["version"])
}

func TestSelectPicksFromInbox(t *testing.T) {
	m := &exec.MockRunner{
		RunFunc: func(name string, args ...string) ([]byte, error) {
			switch {
			case len(args) == 4 && args[1] == "JavaScript":
				return []byte(twoDrafts), nil
			case len(args) == 5 && args[1] == "JavaScript":
				return []byte(`{"uuid":"B","content":"second"}`), nil
			}
			return nil, nil
		},
		InputFunc: func(input string, name string, args ...string) ([]byte, error) {
			lines := strings.Split(strings.TrimSpace(input), "\n")
			return []byte(lines[1] + "\n"), nil
		},
	}
	root := newRootCmd(&app{runner: m})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"select"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "second\n", stdout.String())
	require.Len(t, m.Calls, 4)
	assert.Equal(t, "fzf", m.Calls[1].Name)
	assert.Equal(t, "A | first line ¶ more\nB | second\n", m.Calls[1].Input)
	assert.Contains(t, m.Calls[2].Args[1], `draft id "B"`)
	assert.Equal(t, "B", m.Calls[3].Args[4])
}

func TestSelectWithUUIDSkipsPicker(t *testing.T) {
	_, m, err := run(t, `{"uuid":"A","content":"x"}`, "select", "A")
	require.NoError(t, err)
	require.Len(t, m.Calls, 2)
	for _, c := range m.Calls {
		assert.Equal(t, "osascript", c.Name)
	}
}

func TestDemoStateHugeRangeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := newRootCmd(&app{runner: &exec.MockRunner{}})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"demo", "state", "0:9999999999"})
	err := root.ExecuteContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())
}
