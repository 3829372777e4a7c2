package exec

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRunnerRecords(t *testing.T) {
	m := &MockRunner{
		RunFunc: func(name string, args ...string) ([]byte, error) {
			return []byte("ok"), nil
		},
	}
	out, err := m.Run(context.Background(), "osascript", "-e", "return 1")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, "osascript -e return 1", last.String())

	path, err := m.LookPath("osascript")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/osascript", path)
}

func TestMockRunnerHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&MockRunner{}).Run(ctx, "true")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealRunnerExecError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, err := RealRunner{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "boom", execErr.Output)

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestMockRunnerInput(t *testing.T) {
	m := &MockRunner{
		InputFunc: func(input string, name string, args ...string) ([]byte, error) {
			return []byte(strings.ToUpper(input)), nil
		},
	}
	out, err := m.RunInput(context.Background(), strings.NewReader("a\nb\n"), "fzf", "--no-sort")
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", string(out))

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, "fzf --no-sort", last.String())
	assert.Equal(t, "a\nb\n", last.Input)
}

func TestRealRunnerInput(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	out, err := RealRunner{}.RunInput(context.Background(), strings.NewReader("piped"), "cat")
	require.NoError(t, err)
	assert.Equal(t, "piped", string(out))
}
