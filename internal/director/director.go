package director

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nerveband/drafts-cli/internal/timeline"
)

// Director builds storyboards from a list of CLI invocations
type Director struct {
	ID            string
	Width         int
	Height        int
	FPS           int
	SceneSeconds  float64 // Screen time per scene
	MinSceneFrame int     // Shortest allowed scene window
	Timing        timeline.Timing
}

// NewDirector creates a Director with the demo defaults
func NewDirector(width, height, fps int) *Director {
	return &Director{
		ID:            "DraftsCliDemo",
		Width:         width,
		Height:        height,
		FPS:           fps,
		SceneSeconds:  2.0,
		MinSceneFrame: 30,
		Timing:        timeline.DefaultTiming(),
	}
}

// GenerateStoryboard creates one scene per command
func (d *Director) GenerateStoryboard(commands []string) (*Storyboard, error) {
	if len(commands) == 0 {
		return nil, timeline.ConfigErrorf("scenes", "no commands given")
	}

	scenes := make([]timeline.Scene, 0, len(commands))
	for _, c := range commands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		kind, desc := classifyCommand(c)
		scenes = append(scenes, timeline.Scene{Command: c, Output: kind, Description: desc})
	}
	if len(scenes) == 0 {
		return nil, timeline.ConfigErrorf("scenes", "all commands are blank")
	}

	sb := &Storyboard{
		Version: CurrentVersion,
		Composition: Composition{
			ID:               d.ID,
			Width:            d.Width,
			Height:           d.Height,
			FPS:              d.FPS,
			DurationInFrames: d.sceneFrames() * len(scenes),
		},
		Timing: d.Timing,
		Scenes: scenes,
	}

	if _, err := sb.Timeline(); err != nil {
		return nil, err
	}
	return sb, nil
}

// sceneFrames determines how many frames each scene gets
func (d *Director) sceneFrames() int {
	frames := int(d.SceneSeconds * float64(d.FPS))

	// The output block has to be on screen for at least a moment
	minFrames := d.Timing.OutputDelay + d.FPS/2
	if minFrames < d.MinSceneFrame {
		minFrames = d.MinSceneFrame
	}
	if frames < minFrames {
		frames = minFrames
	}
	return frames
}

// classifyCommand picks the output block and feature label for a command
func classifyCommand(command string) (timeline.OutputKind, string) {
	fields := strings.Fields(command)
	if len(fields) > 0 && fields[0] == "drafts" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return timeline.OutputList, "List All Drafts"
	}

	switch fields[0] {
	case "new", "create":
		if hasFlag(fields, "-t", "--tag") {
			return timeline.OutputCreate, "Create with Tags"
		}
		return timeline.OutputCreate, "Create a Draft"
	case "get":
		return timeline.OutputJSON, "JSON Output"
	case "list", "ls":
		if hasFlag(fields, "-t", "--tag") {
			return timeline.OutputTags, "Filter by Tags"
		}
		return timeline.OutputList, "List All Drafts"
	default:
		return timeline.OutputJSON, fmt.Sprintf("%s Command", capitalize(fields[0]))
	}
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func hasFlag(fields []string, names ...string) bool {
	for _, f := range fields {
		for _, n := range names {
			if f == n || strings.HasPrefix(f, n+"=") {
				return true
			}
		}
	}
	return false
}
