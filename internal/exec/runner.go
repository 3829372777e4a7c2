package exec

import (
	"context"
	"io"
)

// Runner runs external commands. Production code uses RealRunner; tests
// substitute a MockRunner.
type Runner interface {
	// LookPath searches PATH for an executable named file.
	LookPath(file string) (string, error)

	// Run executes name with args and returns its standard output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunInput is Run with stdin read from input.
	RunInput(ctx context.Context, input io.Reader, name string, args ...string) ([]byte, error)
}
