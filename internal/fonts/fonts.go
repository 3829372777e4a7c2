// Package fonts owns the one stateful resource of a render: the parsed
// terminal font. A Handle loads it once, shares an in-flight load between
// concurrent callers and hands out per-goroutine faces afterwards.
package fonts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/singleflight"
)

// ErrResource marks a font that could not be read or parsed.
var ErrResource = errors.New("font resource unavailable")

// ResourceError wraps the load failure for a font source.
type ResourceError struct {
	Source string
	Err    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrResource.Error(), e.Source, e.Err)
}

func (e *ResourceError) Unwrap() []error { return []error{ErrResource, e.Err} }

// State is the lifecycle position of a Handle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Failed
)

var stateNames = [...]string{"uninitialized", "loading", "ready", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

var log = logrus.WithField("component", "fonts")

// Handle is a lazily loaded font. The zero value is not usable; call NewHandle.
type Handle struct {
	path string
	read func(string) ([]byte, error)

	group singleflight.Group

	mu       sync.RWMutex
	state    State
	font     *opentype.Font
	source   string
	fallback bool
	err      error
}

// NewHandle returns a handle for the font file at path. An empty path
// selects the embedded Go Mono face.
func NewHandle(path string) *Handle {
	return &Handle{path: path, read: os.ReadFile}
}

func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Source names the font that was loaded.
func (h *Handle) Source() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.source
}

// Fallback reports whether the embedded face replaced the requested one.
func (h *Handle) Fallback() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fallback
}

// Acquire loads the font on first use. Concurrent callers wait for the same
// load; later callers return immediately. A failed load is retried on the
// next call. Cancelling ctx abandons the wait, not the load.
func (h *Handle) Acquire(ctx context.Context) error {
	h.mu.Lock()
	switch h.state {
	case Ready:
		h.mu.Unlock()
		return nil
	case Uninitialized, Failed:
		h.state = Loading
	}
	h.mu.Unlock()

	ch := h.group.DoChan("font", func() (any, error) {
		return nil, h.load()
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// LoadOrFallback acquires the font and, if it cannot be loaded, continues
// with the embedded Go Mono face. Only context errors are returned.
func (h *Handle) LoadOrFallback(ctx context.Context) error {
	err := h.Acquire(ctx)
	if err == nil || !errors.Is(err, ErrResource) {
		return err
	}

	log.WithError(err).Warn("using embedded Go Mono instead")
	f, perr := opentype.Parse(gomono.TTF)
	if perr != nil {
		return &ResourceError{Source: "gomono", Err: perr}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.font, h.source, h.fallback = f, "gomono", true
	h.state, h.err = Ready, nil
	return nil
}

func (h *Handle) load() error {
	h.mu.RLock()
	if h.state == Ready {
		h.mu.RUnlock()
		return nil
	}
	h.mu.RUnlock()

	source, data, err := h.bytes()
	var f *opentype.Font
	if err == nil {
		f, err = opentype.Parse(data)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state = Failed
		h.err = &ResourceError{Source: source, Err: err}
		return h.err
	}
	h.font, h.source, h.state, h.err = f, source, Ready, nil
	log.WithField("source", source).Debug("font loaded")
	return nil
}

func (h *Handle) bytes() (string, []byte, error) {
	if h.path == "" {
		return "gomono", gomono.TTF, nil
	}
	data, err := h.read(h.path)
	return h.path, data, err
}

// NewFace returns a face of the given pixel size. Faces are not safe for
// concurrent use, so every render goroutine asks for its own.
func (h *Handle) NewFace(size float64) (font.Face, error) {
	h.mu.RLock()
	f, state := h.font, h.state
	h.mu.RUnlock()
	if state != Ready {
		return nil, fmt.Errorf("font not ready (%s)", state)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
