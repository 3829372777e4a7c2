package timeline

import (
	"fmt"
	"strings"
)

// OutputKind selects the canned result block shown under a command.
type OutputKind int

const (
	OutputList OutputKind = iota
	OutputCreate
	OutputJSON
	OutputTags
)

var outputKindNames = [...]string{"list", "create", "json", "tags"}

func (k OutputKind) String() string {
	if k < 0 || int(k) >= len(outputKindNames) {
		return fmt.Sprintf("OutputKind(%d)", int(k))
	}
	return outputKindNames[k]
}

// ParseOutputKind accepts the lower-case names used in storyboard files.
func ParseOutputKind(s string) (OutputKind, error) {
	for i, name := range outputKindNames {
		if strings.EqualFold(s, name) {
			return OutputKind(i), nil
		}
	}
	return 0, ConfigErrorf("output", "unknown output kind %q", s)
}

func (k OutputKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(outputKindNames) {
		return nil, ConfigErrorf("output", "unknown output kind %d", int(k))
	}
	return []byte(outputKindNames[k]), nil
}

func (k *OutputKind) UnmarshalText(b []byte) error {
	parsed, err := ParseOutputKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Scene is one segment of the demo: a simulated command and its result.
type Scene struct {
	Command     string     `yaml:"command" json:"command"`
	Output      OutputKind `yaml:"output" json:"output"`
	Description string     `yaml:"description" json:"description"`
}

// Timing holds the per-scene animation constants, all in frames.
type Timing struct {
	TypewriterStart    int `yaml:"typewriter_start" json:"typewriterStart"`
	TypewriterDuration int `yaml:"typewriter_duration" json:"typewriterDuration"`
	OutputDelay        int `yaml:"output_delay" json:"outputDelay"`
	BlinkPeriod        int `yaml:"blink_period" json:"blinkPeriod"`
}

// DefaultTiming matches the pacing of the published demo video.
func DefaultTiming() Timing {
	return Timing{
		TypewriterStart:    3,
		TypewriterDuration: 18,
		OutputDelay:        22,
		BlinkPeriod:        15,
	}
}

func (t Timing) Validate() error {
	if t.TypewriterStart < 0 {
		return ConfigErrorf("typewriter_start", "must not be negative, got %d", t.TypewriterStart)
	}
	if t.TypewriterDuration <= 0 {
		return ConfigErrorf("typewriter_duration", "must be positive, got %d", t.TypewriterDuration)
	}
	if t.OutputDelay < 0 {
		return ConfigErrorf("output_delay", "must not be negative, got %d", t.OutputDelay)
	}
	if t.BlinkPeriod <= 0 {
		return ConfigErrorf("blink_period", "must be positive, got %d", t.BlinkPeriod)
	}
	return nil
}

// Timeline is the read-only configuration a composition renders from.
type Timeline struct {
	Scenes      []Scene
	TotalFrames int
	FPS         int
	Timing      Timing
}

// Validate reports the first configuration problem. A timeline that
// validates can be rendered at any frame without further errors.
func (tl *Timeline) Validate() error {
	if tl == nil {
		return ConfigErrorf("timeline", "missing")
	}
	if len(tl.Scenes) == 0 {
		return ConfigErrorf("scenes", "no scenes configured")
	}
	if tl.FPS <= 0 {
		return ConfigErrorf("fps", "must be positive, got %d", tl.FPS)
	}
	if tl.TotalFrames < len(tl.Scenes) {
		return ConfigErrorf("total_frames", "%d frames cannot show %d scenes", tl.TotalFrames, len(tl.Scenes))
	}
	return tl.Timing.Validate()
}
