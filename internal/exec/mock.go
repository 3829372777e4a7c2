package exec

import (
	"context"
	"io"
	"strings"
	"sync"
)

// Call is one command recorded by MockRunner.
type Call struct {
	Name  string
	Args  []string
	Input string
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// MockRunner records commands instead of running them.
type MockRunner struct {
	mu    sync.Mutex
	Calls []Call

	// LookPathFunc allows custom behavior for LookPath in tests
	LookPathFunc func(file string) (string, error)

	// RunFunc produces the output of a call. Nil returns empty output.
	RunFunc func(name string, args ...string) ([]byte, error)

	// InputFunc answers RunInput calls. Nil falls back to RunFunc.
	InputFunc func(input string, name string, args ...string) ([]byte, error)
}

func (m *MockRunner) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	// By default, assume commands exist
	return "/usr/bin/" + file, nil
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.record(Call{Name: name, Args: append([]string(nil), args...)})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return nil, nil
}

func (m *MockRunner) RunInput(ctx context.Context, input io.Reader, name string, args ...string) ([]byte, error) {
	var in string
	if input != nil {
		b, err := io.ReadAll(input)
		if err != nil {
			return nil, err
		}
		in = string(b)
	}
	m.record(Call{Name: name, Args: append([]string(nil), args...), Input: in})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case m.InputFunc != nil:
		return m.InputFunc(in, name, args...)
	case m.RunFunc != nil:
		return m.RunFunc(name, args...)
	}
	return nil, nil
}

func (m *MockRunner) record(c Call) {
	m.mu.Lock()
	m.Calls = append(m.Calls, c)
	m.mu.Unlock()
}

// Last returns the most recent call.
func (m *MockRunner) Last() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Call{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
