// Package picker is a one-shot terminal list for choosing a draft when fzf
// is not installed.
package picker

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by Run when the user quits without choosing.
var ErrCancelled = errors.New("nothing picked")

// Item is one choice. Label is what the user sees and filters on.
type Item struct {
	ID    string
	Label string
}

func (i Item) FilterValue() string { return i.Label }

var selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2A79FF")).Bold(true)

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(Item)
	if !ok {
		return
	}

	cursor := " "
	if index == m.Index() {
		cursor = ">"
	}
	str := truncate(fmt.Sprintf("%s %s", cursor, i.Label), m.Width())

	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render(str))
	} else {
		fmt.Fprint(w, str)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// Model wraps a filterable bubbles list and remembers the chosen item.
type Model struct {
	list     list.Model
	choice   Item
	picked   bool
	quitting bool
}

func New(title string, items []Item) Model {
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}
	l := list.New(li, itemDelegate{}, 80, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	return Model{list: l}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(Item); ok {
				m.choice, m.picked = it, true
			}
			m.quitting = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			if msg.String() == "esc" && m.list.FilterState() == list.FilterApplied {
				break
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Choice returns the picked item, if any.
func (m Model) Choice() (Item, bool) { return m.choice, m.picked }

// Run shows the list and returns the ID of the picked item.
func Run(title string, items []Item, opts ...tea.ProgramOption) (string, error) {
	if len(items) == 0 {
		return "", ErrCancelled
	}
	final, err := tea.NewProgram(New(title, items), opts...).Run()
	if err != nil {
		return "", err
	}
	it, ok := final.(Model).Choice()
	if !ok {
		return "", ErrCancelled
	}
	return it.ID, nil
}
