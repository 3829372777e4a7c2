// Package preview plays the demo in the terminal.
package preview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nerveband/drafts-cli/internal/timeline"
)

type TickMsg time.Time

// Options control playback.
type Options struct {
	// Frames stops playback after this many frames. Zero plays one pass,
	// or forever when Loop is set.
	Frames int
	Loop   bool
	Styles Styles
}

// Model is a bubbletea model stepping through the composition one frame
// per tick.
type Model struct {
	composer *timeline.Composer
	opts     Options
	interval time.Duration

	frame  int
	played int
	paused bool
	done   bool
}

func New(c *timeline.Composer, opts Options) Model {
	if opts.Styles.Roles == nil {
		opts.Styles = DefaultStyles()
	}
	return Model{
		composer: c,
		opts:     opts,
		interval: time.Second / time.Duration(c.FPS()),
	}
}

func (m Model) Frame() int   { return m.frame }
func (m Model) Paused() bool { return m.paused }
func (m Model) Done() bool   { return m.done }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// limit is the number of frames to play, or 0 for no limit.
func (m Model) limit() int {
	switch {
	case m.opts.Frames > 0:
		return m.opts.Frames
	case m.opts.Loop:
		return 0
	default:
		return m.composer.TotalFrames()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.paused {
			return m, m.tick()
		}
		m.played++
		if limit := m.limit(); limit > 0 && m.played >= limit {
			m.done = true
			return m, tea.Quit
		}
		m.frame++
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p":
			m.paused = !m.paused
		case "right", "l":
			m.frame++
		case "left", "h":
			if m.frame > 0 {
				m.frame--
			}
		case "home", "0":
			m.frame = 0
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	st := m.composer.State(m.frame)
	status := fmt.Sprintf("frame %d  scene %d/%d  local %d", m.frame, st.SceneIndex+1, st.SceneCount, st.LocalFrame)
	if m.paused {
		status += "  [paused]"
	}
	status += "  space pause · ←/→ step · q quit"
	return Render(st, m.opts.Styles) + "\n\n" + m.opts.Styles.Status.Render(status) + "\n"
}

// Run plays the composition until it finishes or the user quits.
func Run(c *timeline.Composer, opts Options, teaOpts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(c, opts), teaOpts...).Run()
	return err
}
