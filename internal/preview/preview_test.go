package preview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerveband/drafts-cli/internal/director"
	"github.com/nerveband/drafts-cli/internal/timeline"
)

func composer(t *testing.T) *timeline.Composer {
	t.Helper()
	c, err := director.DefaultStoryboard().Composer()
	require.NoError(t, err)
	return c
}

func TestRenderTypingFrame(t *testing.T) {
	c := composer(t)
	out := Render(c.State(12), DefaultStyles())

	assert.Contains(t, out, "Drafts CLI")
	assert.Contains(t, out, "$ draft")
	assert.NotContains(t, out, "drafts list")
	assert.Contains(t, out, "LIST ALL DRAFTS")
	assert.NotContains(t, out, "3 drafts found")
}

func TestRenderOutputFrame(t *testing.T) {
	c := composer(t)
	out := Render(c.State(30), DefaultStyles())

	assert.Contains(t, out, "$ drafts list")
	assert.Contains(t, out, "3 drafts found")
	assert.NotContains(t, out, "█", "cursor hides after typing")
}

func TestRenderCursorBlink(t *testing.T) {
	st := composer(t).State(5)
	require.True(t, st.CursorVisible)

	st.CursorBlinkOn = true
	assert.Contains(t, Render(st, DefaultStyles()), "█")
	st.CursorBlinkOn = false
	assert.NotContains(t, Render(st, DefaultStyles()), "█")
}

func TestModelPlaysOnePass(t *testing.T) {
	m := New(composer(t), Options{Frames: 3})
	var cmd tea.Cmd
	var model tea.Model = m
	for i := 0; i < 2; i++ {
		model, cmd = model.Update(TickMsg(time.Now()))
		require.NotNil(t, cmd)
	}
	assert.Equal(t, 2, model.(Model).Frame())

	model, _ = model.Update(TickMsg(time.Now()))
	assert.True(t, model.(Model).Done())
}

func TestModelKeys(t *testing.T) {
	var model tea.Model = New(composer(t), Options{Loop: true})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, model.(Model).Paused())

	model, _ = model.Update(TickMsg(time.Now()))
	assert.Equal(t, 0, model.(Model).Frame(), "paused model does not advance")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, model.(Model).Frame())

	assert.True(t, strings.Contains(model.View(), "[paused]"))

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, model.(Model).Done())
	assert.NotNil(t, cmd)
}

func TestModelLoopsPastEnd(t *testing.T) {
	c := composer(t)
	var model tea.Model = New(c, Options{Loop: true})
	for i := 0; i < c.TotalFrames()+5; i++ {
		model, _ = model.Update(TickMsg(time.Now()))
	}
	m := model.(Model)
	assert.False(t, m.Done())
	assert.Equal(t, c.State(5).SceneIndex, c.State(m.Frame()).SceneIndex)
}
