package director

import (
	"fmt"

	"github.com/nerveband/drafts-cli/internal/timeline"
)

// CurrentVersion is written into new storyboard files.
const CurrentVersion = "1.0"

// Storyboard is the on-disk description of a demo video
type Storyboard struct {
	Version     string           `yaml:"version"`
	Composition Composition      `yaml:"composition"`
	Timing      timeline.Timing  `yaml:"timing"`
	Scenes      []timeline.Scene `yaml:"scenes"`
}

// Composition holds the fixed video parameters
type Composition struct {
	ID               string `yaml:"id"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	FPS              int    `yaml:"fps"`
	DurationInFrames int    `yaml:"duration_in_frames"`
}

// DefaultStoryboard returns the four-scene Drafts CLI demo
func DefaultStoryboard() *Storyboard {
	return &Storyboard{
		Version: CurrentVersion,
		Composition: Composition{
			ID:               "DraftsCliDemo",
			Width:            1280,
			Height:           720,
			FPS:              30,
			DurationInFrames: 240,
		},
		Timing: timeline.DefaultTiming(),
		Scenes: []timeline.Scene{
			{Command: "drafts list", Output: timeline.OutputList, Description: "List All Drafts"},
			{Command: `drafts new "New project idea" -t work`, Output: timeline.OutputCreate, Description: "Create with Tags"},
			{Command: "drafts get 574FEA89", Output: timeline.OutputJSON, Description: "JSON Output"},
			{Command: "drafts list -t work", Output: timeline.OutputTags, Description: "Filter by Tags"},
		},
	}
}

// Timeline converts the storyboard into the validated core configuration.
func (s *Storyboard) Timeline() (*timeline.Timeline, error) {
	if s.Composition.Width <= 0 || s.Composition.Height <= 0 {
		return nil, timeline.ConfigErrorf("composition", "invalid size %dx%d", s.Composition.Width, s.Composition.Height)
	}
	tl := &timeline.Timeline{
		Scenes:      append([]timeline.Scene(nil), s.Scenes...),
		TotalFrames: s.Composition.DurationInFrames,
		FPS:         s.Composition.FPS,
		Timing:      s.Timing,
	}
	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("storyboard %q: %w", s.Composition.ID, err)
	}
	return tl, nil
}

// Composer is a shortcut for Timeline followed by timeline.NewComposer.
func (s *Storyboard) Composer() (*timeline.Composer, error) {
	tl, err := s.Timeline()
	if err != nil {
		return nil, err
	}
	return timeline.NewComposer(tl)
}
