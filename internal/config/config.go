package config

import (
	"github.com/nerveband/drafts-cli/internal/timeline"
)

type Config struct {
	StoryboardPath string
	OutputVideo    string
	Width          int
	Height         int
	FPS            int
	Workers        int
	VideoEncoder   string
	Quality        int
	FontPath       string
	FramesDir      string
	Preset         string
	ShowStats      bool
	BuildVersion   string
}

// FrameParams describes the raw frame stream handed to an encoder.
type FrameParams struct {
	Width, Height int
	FPS           int
	TotalFrames   int
	Encoder       string
	Quality       int
}

// Preset sizes for common delivery targets.
var Presets = map[string][2]int{
	"16:9": {1280, 720},
	"9:16": {720, 1280},
	"4:5":  {1080, 1350},
}

// ApplyPreset replaces Width and Height when Preset names a known format.
func (c *Config) ApplyPreset() error {
	if c.Preset == "" {
		return nil
	}
	size, ok := Presets[c.Preset]
	if !ok {
		return timeline.ConfigErrorf("preset", "unknown preset %q (use 16:9, 9:16 or 4:5)", c.Preset)
	}
	c.Width, c.Height = size[0], size[1]
	return nil
}

// DefaultQuality picks a quality value suited to the encoder.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // bitrate = Q*100 kbit/s
	case "h264_nvenc":
		return 28
	default:
		return 23 // x264 CRF
	}
}

// Validate checks the render settings. H.264 needs even frame sizes, so odd
// sizes are rounded up rather than rejected.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return timeline.ConfigErrorf("size", "invalid frame size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return timeline.ConfigErrorf("fps", "must be positive, got %d", c.FPS)
	}
	if c.Workers < 0 {
		return timeline.ConfigErrorf("workers", "must not be negative, got %d", c.Workers)
	}
	if c.Width%2 != 0 {
		c.Width++
	}
	if c.Height%2 != 0 {
		c.Height++
	}
	if c.Quality == 0 {
		c.Quality = DefaultQuality(c.VideoEncoder)
	}
	return nil
}

// FrameParams derives encoder parameters for a composition of totalFrames.
func (c *Config) FrameParams(totalFrames int) FrameParams {
	return FrameParams{
		Width:       c.Width,
		Height:      c.Height,
		FPS:         c.FPS,
		TotalFrames: totalFrames,
		Encoder:     c.VideoEncoder,
		Quality:     c.Quality,
	}
}
