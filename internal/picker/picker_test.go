package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inbox = []Item{
	{ID: "A", Label: "A | Weekly meeting notes ¶ agenda"},
	{ID: "B", Label: "B | Project roadmap"},
	{ID: "C", Label: "C | Shopping list"},
}

func press(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func TestEnterPicksHighlighted(t *testing.T) {
	m, cmd := press(New("Inbox", inbox),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	it, ok := m.(Model).Choice()
	require.True(t, ok)
	assert.Equal(t, "B", it.ID)
	assert.Empty(t, m.View())
}

func TestQuitPicksNothing(t *testing.T) {
	m, cmd := press(New("Inbox", inbox), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	_, ok := m.(Model).Choice()
	assert.False(t, ok)
}

func TestViewListsItems(t *testing.T) {
	m, _ := New("Inbox", inbox).Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	view := m.View()
	assert.Contains(t, view, "Inbox")
	assert.Contains(t, view, "> A | Weekly meeting notes")
	assert.Contains(t, view, "B | Project roadmap")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "é...", truncate("éééééé", 4))
}

func TestRunWithoutItems(t *testing.T) {
	_, err := Run("Inbox", nil)
	assert.ErrorIs(t, err, ErrCancelled)
}
