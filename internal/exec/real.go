package exec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExecError wraps an execution error with the command's stderr.
type ExecError struct {
	Err    error
	Output string
}

func (e *ExecError) Error() string {
	if e.Output == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Output)
}

func (e *ExecError) Unwrap() error { return e.Err }

// RealRunner implements Runner with os/exec.
type RealRunner struct{}

func (RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (RealRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, &ExecError{Err: err, Output: strings.TrimSpace(stderr.String())}
	}
	return out, nil
}

// RunInput leaves stderr on the terminal so interactive filters can draw
// their UI there.
func (RealRunner) RunInput(ctx context.Context, input io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = input
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return out, &ExecError{Err: err}
	}
	return out, nil
}
