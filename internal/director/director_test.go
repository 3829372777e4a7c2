package director

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerveband/drafts-cli/internal/timeline"
)

func TestDirector(t *testing.T) {
	director := NewDirector(1280, 720, 30)

	sb, err := director.GenerateStoryboard([]string{
		"drafts list",
		`drafts new "Groceries" -t home`,
		"drafts get 574FEA89",
		"drafts list -t work",
		"  ",
	})
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, sb.Version)
	require.Len(t, sb.Scenes, 4)
	assert.Equal(t, timeline.OutputList, sb.Scenes[0].Output)
	assert.Equal(t, timeline.OutputCreate, sb.Scenes[1].Output)
	assert.Equal(t, "Create with Tags", sb.Scenes[1].Description)
	assert.Equal(t, timeline.OutputJSON, sb.Scenes[2].Output)
	assert.Equal(t, timeline.OutputTags, sb.Scenes[3].Output)

	// 2s at 30fps per scene
	assert.Equal(t, 240, sb.Composition.DurationInFrames)

	t.Logf("Generated storyboard with %d scenes", len(sb.Scenes))
}

func TestDirectorStretchesShortScenes(t *testing.T) {
	director := NewDirector(1280, 720, 30)
	director.SceneSeconds = 0.1

	sb, err := director.GenerateStoryboard([]string{"drafts list"})
	require.NoError(t, err)

	// Output delay plus half a second
	assert.Equal(t, 22+15, sb.Composition.DurationInFrames)
}

func TestDirectorRejectsEmptyInput(t *testing.T) {
	_, err := NewDirector(1280, 720, 30).GenerateStoryboard(nil)
	assert.ErrorIs(t, err, timeline.ErrConfig)

	_, err = NewDirector(1280, 720, 30).GenerateStoryboard([]string{"", " "})
	assert.ErrorIs(t, err, timeline.ErrConfig)
}

func TestDefaultStoryboardTimeline(t *testing.T) {
	tl, err := DefaultStoryboard().Timeline()
	require.NoError(t, err)
	assert.Equal(t, 240, tl.TotalFrames)
	assert.Equal(t, 30, tl.FPS)
	assert.Len(t, tl.Scenes, 4)

	c, err := DefaultStoryboard().Composer()
	require.NoError(t, err)
	assert.Equal(t, 60, c.FramesPerScene())
}

func TestStoryboardTimelineErrors(t *testing.T) {
	sb := DefaultStoryboard()
	sb.Scenes = nil
	_, err := sb.Timeline()
	assert.ErrorIs(t, err, timeline.ErrConfig)

	sb = DefaultStoryboard()
	sb.Composition.Width = 0
	_, err = sb.Timeline()
	assert.ErrorIs(t, err, timeline.ErrConfig)
}

func TestStoryboardWriteRead(t *testing.T) {
	sb := DefaultStoryboard()
	sb.Timing.OutputDelay = 30

	tmpFile := filepath.Join(t.TempDir(), "storyboard.yaml")
	require.NoError(t, WriteStoryboard(sb, tmpFile))

	data, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: create")
	assert.Contains(t, string(data), "output_delay: 30")

	readBack, err := ReadStoryboard(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, sb, readBack)
}

func TestReadStoryboardRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `version: "1.0"
composition: {id: x, width: 10, height: 10, fps: 30, duration_in_frames: 30}
timing: {typewriter_start: 3, typewriter_duration: 18, output_delay: 22, blink_perod: 15}
scenes: [{command: drafts list, output: list, description: List}]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := ReadStoryboard(path)
	assert.Error(t, err)
}

func TestReadStoryboardRejectsUnknownOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `scenes: [{command: drafts list, output: video, description: List}]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := ReadStoryboard(path)
	assert.Error(t, err)
}

func TestClassifyUnknownCommandLabel(t *testing.T) {
	kind, label := classifyCommand("drafts émettre hello")
	assert.Equal(t, timeline.OutputJSON, kind)
	assert.Equal(t, "Émettre Command", label)
	assert.True(t, utf8.ValidString(label))

	_, label = classifyCommand("drafts sync")
	assert.Equal(t, "Sync Command", label)
}
