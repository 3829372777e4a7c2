package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerveband/drafts-cli/internal/fonts"
	"github.com/nerveband/drafts-cli/internal/timeline"
)

func newRenderer(t *testing.T, w, h int) *Renderer {
	t.Helper()
	fh := fonts.NewHandle("")
	require.NoError(t, fh.Acquire(context.Background()))
	r, err := New(fh, w, h)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func baseState() timeline.PresentationState {
	return timeline.PresentationState{
		Frame:         10,
		SceneIndex:    0,
		SceneCount:    4,
		LocalFrame:    10,
		CharsRevealed: 4,
		CursorActive:  true,
		CursorVisible: true,
		CursorBlinkOn: true,
		Scene: timeline.Scene{
			Command:     "drafts list",
			Output:      timeline.OutputList,
			Description: "List your drafts",
		},
	}
}

func render(r *Renderer, st timeline.PresentationState) *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	r.Draw(img, st)
	return img
}

func TestDrawIsDeterministic(t *testing.T) {
	r := newRenderer(t, 640, 360)
	st := baseState()
	assert.Equal(t, render(r, st).Pix, render(r, st).Pix)
}

func TestDrawBackground(t *testing.T) {
	r := newRenderer(t, 640, 360)
	img := render(r, baseState())
	assert.Equal(t, DefaultPalette.Background, img.RGBAAt(2, 2))
}

func TestDrawCursorFollowsBlink(t *testing.T) {
	r := newRenderer(t, 640, 360)
	on := baseState()
	off := on
	off.CursorBlinkOn = false
	assert.NotEqual(t, render(r, on).Pix, render(r, off).Pix)

	hidden := on
	hidden.CursorVisible = false
	assert.Equal(t, render(r, off).Pix, render(r, hidden).Pix)
}

func TestDrawOutputGate(t *testing.T) {
	r := newRenderer(t, 640, 360)
	st := baseState()
	shown := st
	shown.OutputVisible = true
	assert.NotEqual(t, render(r, st).Pix, render(r, shown).Pix)
}

func TestDrawPortraitLetterbox(t *testing.T) {
	r := newRenderer(t, 360, 640)
	img := render(r, baseState())
	// Content is centred vertically; the top band is plain background.
	assert.Equal(t, DefaultPalette.Background, img.RGBAAt(180, 10))
}

func TestNewRejectsEmptyFrame(t *testing.T) {
	_, err := New(fonts.NewHandle(""), 0, 720)
	require.ErrorIs(t, err, timeline.ErrConfig)
}

func TestOutputLines(t *testing.T) {
	for _, kind := range []timeline.OutputKind{timeline.OutputList, timeline.OutputCreate, timeline.OutputJSON, timeline.OutputTags} {
		assert.NotEmpty(t, OutputLines(kind), kind.String())
	}
	assert.Nil(t, OutputLines(timeline.OutputKind(99)))

	create := OutputLines(timeline.OutputCreate)
	assert.Equal(t, "Draft created", create[0].Text())
	assert.Equal(t, RoleSuccess, create[0].Spans[0].Role)

	json := OutputLines(timeline.OutputJSON)
	assert.Equal(t, `  "tags": ["work", "important"]`, json[3].Text())
}
