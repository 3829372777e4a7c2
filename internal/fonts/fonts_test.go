package fonts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestAcquireEmbedded(t *testing.T) {
	h := NewHandle("")
	assert.Equal(t, Uninitialized, h.State())

	require.NoError(t, h.Acquire(context.Background()))
	assert.Equal(t, Ready, h.State())
	assert.Equal(t, "gomono", h.Source())

	face, err := h.NewFace(28)
	require.NoError(t, err)
	defer face.Close()
	assert.Greater(t, face.Metrics().Height.Ceil(), 20)
}

func TestConcurrentAcquireLoadsOnce(t *testing.T) {
	release := make(chan struct{})
	var reads atomic.Int32

	h := NewHandle("JetBrainsMono.ttf")
	h.read = func(string) ([]byte, error) {
		reads.Add(1)
		<-release
		return gomono.TTF, nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- h.Acquire(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return h.State() == Loading }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), reads.Load())
	assert.Equal(t, Ready, h.State())
	assert.Equal(t, "JetBrainsMono.ttf", h.Source())
}

func TestAcquireFailureIsResourceErrorAndRetried(t *testing.T) {
	fail := true
	h := NewHandle("missing.ttf")
	h.read = func(string) ([]byte, error) {
		if fail {
			return nil, errors.New("no such file")
		}
		return gomono.TTF, nil
	}

	err := h.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResource)
	var resErr *ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "missing.ttf", resErr.Source)
	assert.Equal(t, Failed, h.State())

	_, err = h.NewFace(12)
	assert.Error(t, err)

	fail = false
	require.NoError(t, h.Acquire(context.Background()))
	assert.Equal(t, Ready, h.State())
}

func TestParseFailureIsResourceError(t *testing.T) {
	h := NewHandle("broken.ttf")
	h.read = func(string) ([]byte, error) { return []byte("not a font"), nil }

	assert.ErrorIs(t, h.Acquire(context.Background()), ErrResource)
}

func TestLoadOrFallback(t *testing.T) {
	h := NewHandle("missing.ttf")
	h.read = func(string) ([]byte, error) { return nil, errors.New("no such file") }

	require.NoError(t, h.LoadOrFallback(context.Background()))
	assert.Equal(t, Ready, h.State())
	assert.True(t, h.Fallback())
	assert.Equal(t, "gomono", h.Source())

	face, err := h.NewFace(18)
	require.NoError(t, err)
	face.Close()
}

func TestAcquireHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	h := NewHandle("slow.ttf")
	h.read = func(string) ([]byte, error) {
		<-release
		return gomono.TTF, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.Acquire(ctx), context.DeadlineExceeded)
	assert.ErrorIs(t, h.LoadOrFallback(ctx), context.DeadlineExceeded)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.Equal(t, "State(-1)", State(-1).String())
}
