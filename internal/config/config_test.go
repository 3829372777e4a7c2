package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerveband/drafts-cli/internal/timeline"
)

func TestApplyPreset(t *testing.T) {
	cfg := &Config{Width: 1280, Height: 720, Preset: "9:16"}
	require.NoError(t, cfg.ApplyPreset())
	assert.Equal(t, 720, cfg.Width)
	assert.Equal(t, 1280, cfg.Height)

	cfg.Preset = "21:9"
	assert.ErrorIs(t, cfg.ApplyPreset(), timeline.ErrConfig)
}

func TestValidateRoundsOddSizesAndFillsQuality(t *testing.T) {
	cfg := &Config{Width: 1279, Height: 721, FPS: 30, VideoEncoder: "h264_nvenc"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 722, cfg.Height)
	assert.Equal(t, 28, cfg.Quality)

	p := cfg.FrameParams(240)
	assert.Equal(t, FrameParams{Width: 1280, Height: 722, FPS: 30, TotalFrames: 240, Encoder: "h264_nvenc", Quality: 28}, p)
}

func TestValidateRejects(t *testing.T) {
	assert.ErrorIs(t, (&Config{Width: 0, Height: 720, FPS: 30}).Validate(), timeline.ErrConfig)
	assert.ErrorIs(t, (&Config{Width: 1280, Height: 720, FPS: 0}).Validate(), timeline.ErrConfig)
	assert.ErrorIs(t, (&Config{Width: 1280, Height: 720, FPS: 30, Workers: -1}).Validate(), timeline.ErrConfig)
}
