package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nerveband/drafts-cli/internal/renderer"
	"github.com/nerveband/drafts-cli/internal/timeline"
)

const boxWidth = 64

// Styles colours the preview. Colours follow renderer.DefaultPalette.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Box       lipgloss.Style
	Chrome    lipgloss.Style
	Prompt    lipgloss.Style
	Command   lipgloss.Style
	Cursor    lipgloss.Style
	Label     lipgloss.Style
	DotActive lipgloss.Style
	Dot       lipgloss.Style
	Rule      lipgloss.Style
	Roles     map[renderer.Role]lipgloss.Style
	Status    lipgloss.Style
}

func DefaultStyles() Styles {
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(c("#ffffff")),
		Subtitle: lipgloss.NewStyle().Foreground(c("#6288b5")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("#3a3a5a")).
			Width(boxWidth).
			Padding(0, 1),
		Chrome:    lipgloss.NewStyle().Foreground(c("#888888")),
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(c("#ff9f43")),
		Command:   lipgloss.NewStyle().Foreground(c("#6bcbff")),
		Cursor:    lipgloss.NewStyle().Foreground(c("#6bcbff")),
		Label:     lipgloss.NewStyle().Bold(true).Foreground(c("#ffffff")),
		DotActive: lipgloss.NewStyle().Foreground(c("#ff9f43")),
		Dot:       lipgloss.NewStyle().Foreground(c("#6288b5")),
		Rule:      lipgloss.NewStyle().Foreground(c("#444444")),
		Roles: map[renderer.Role]lipgloss.Style{
			renderer.RolePlain:   lipgloss.NewStyle().Foreground(c("#e8e8e8")),
			renderer.RoleKey:     lipgloss.NewStyle().Foreground(c("#6bb8ff")),
			renderer.RoleString:  lipgloss.NewStyle().Foreground(c("#7ec87e")),
			renderer.RoleBracket: lipgloss.NewStyle().Foreground(c("#b794f6")),
			renderer.RoleSuccess: lipgloss.NewStyle().Foreground(c("#4ade80")),
			renderer.RoleMuted:   lipgloss.NewStyle().Foreground(c("#888888")),
		},
		Status: lipgloss.NewStyle().Faint(true),
	}
}

// Render draws one presentation state as terminal text.
func Render(st timeline.PresentationState, s Styles) string {
	var body strings.Builder
	body.WriteString(s.Chrome.Render("● ● ●   drafts - Terminal"))
	body.WriteString("\n\n")

	body.WriteString(s.Prompt.Render("$") + " " + s.Command.Render(st.RevealedCommand()))
	if st.CursorVisible {
		if st.CursorBlinkOn {
			body.WriteString(s.Cursor.Render("█"))
		} else {
			body.WriteString(" ")
		}
	}
	body.WriteString("\n")

	if st.OutputVisible {
		body.WriteString("\n")
		for _, ln := range renderer.OutputLines(st.Scene.Output) {
			if ln.Rule {
				body.WriteString(s.Rule.Render(strings.Repeat("─", 44)))
				body.WriteString("\n")
				continue
			}
			for _, span := range ln.Spans {
				body.WriteString(s.Roles[span.Role].Render(span.Text))
			}
			body.WriteString("\n")
		}
	}

	header := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("Drafts CLI"),
		s.Subtitle.Render("Edit your Drafts from the command line"),
	)
	footer := lipgloss.JoinVertical(lipgloss.Center,
		s.Label.Render(strings.ToUpper(st.Scene.Description)),
		dots(st.SceneIndex, st.SceneCount, s),
	)
	return lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		s.Box.Render(strings.TrimRight(body.String(), "\n")),
		footer,
	)
}

func dots(active, count int, s Styles) string {
	parts := make([]string, count)
	for i := range parts {
		if i == active {
			parts[i] = s.DotActive.Render("━━━")
		} else {
			parts[i] = s.Dot.Render("•")
		}
	}
	return strings.Join(parts, " ")
}
