package renderer

import (
	"strings"

	"github.com/nerveband/drafts-cli/internal/timeline"
)

// Role is the syntax class of an output span.
type Role int

const (
	RolePlain Role = iota
	RoleKey
	RoleString
	RoleBracket
	RoleSuccess
	RoleMuted
)

// Span is a run of text in one colour.
type Span struct {
	Text string
	Role Role
}

// Line is one row of a result block. A Rule line is drawn as a separator.
type Line struct {
	Spans []Span
	Rule  bool
	Small bool
}

// Text joins the spans of l.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func line(spans ...Span) Line { return Line{Spans: spans} }
func plain(s string) Span    { return Span{Text: s} }
func key(s string) Span      { return Span{Text: `"` + s + `"`, Role: RoleKey} }
func str(s string) Span      { return Span{Text: `"` + s + `"`, Role: RoleString} }
func br(s string) Span       { return Span{Text: s, Role: RoleBracket} }

// OutputLines returns the simulated result printed by a scene's command.
func OutputLines(kind timeline.OutputKind) []Line {
	switch kind {
	case timeline.OutputList:
		return []Line{
			line(Span{Text: "UUID           TITLE                  FOLDER", Role: RoleKey}),
			{Rule: true},
			line(Span{Text: "574FEA89...  ", Role: RoleString}, plain("Weekly meeting notes   "), Span{Text: "inbox", Role: RoleMuted}),
			line(Span{Text: "A1B2C3D4...  ", Role: RoleString}, plain("Project roadmap        "), Span{Text: "inbox", Role: RoleMuted}),
			line(Span{Text: "E5F67890...  ", Role: RoleString}, plain("Shopping list          "), Span{Text: "inbox", Role: RoleMuted}),
			{Spans: []Span{{Text: "3 drafts found", Role: RoleMuted}}, Small: true},
		}
	case timeline.OutputCreate:
		return []Line{
			line(Span{Text: "Draft created", Role: RoleSuccess}),
			line(br("{")),
			line(plain("  "), key("uuid"), plain(": "), str("A1B2C3D4..."), plain(",")),
			line(plain("  "), key("title"), plain(": "), str("New project idea"), plain(",")),
			line(plain("  "), key("tags"), plain(": "), br("["), str("work"), br("]")),
			line(br("}")),
		}
	case timeline.OutputJSON:
		return []Line{
			line(br("{")),
			line(plain("  "), key("uuid"), plain(": "), str("574FEA89..."), plain(",")),
			line(plain("  "), key("title"), plain(": "), str("Meeting Notes"), plain(",")),
			line(plain("  "), key("tags"), plain(": "), br("["), str("work"), plain(", "), str("important"), br("]")),
			line(br("}")),
		}
	case timeline.OutputTags:
		return []Line{
			line(Span{Text: "work       ", Role: RoleKey}, Span{Text: "5 drafts", Role: RoleMuted}),
			line(Span{Text: "important  ", Role: RoleKey}, Span{Text: "3 drafts", Role: RoleMuted}),
			line(Span{Text: "ideas      ", Role: RoleKey}, Span{Text: "8 drafts", Role: RoleMuted}),
			{Spans: []Span{{Text: `1 draft with tag "work"`, Role: RoleMuted}}, Small: true},
		}
	default:
		return nil
	}
}
