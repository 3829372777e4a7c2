package renderer

import (
	"fmt"
	"image/color"
)

// Palette holds the demo colours.
type Palette struct {
	Background color.RGBA
	White      color.RGBA
	Secondary  color.RGBA
	Command    color.RGBA
	Accent     color.RGBA
	Text       color.RGBA

	Terminal    color.RGBA
	TitleBar    color.RGBA
	Border      color.RGBA
	ChromeTitle color.RGBA
	Rule        color.RGBA
	Lights      [3]color.RGBA

	// Output roles
	String  color.RGBA
	Key     color.RGBA
	Bracket color.RGBA
	Success color.RGBA
	Muted   color.RGBA
}

var DefaultPalette = Palette{
	Background: hex("#003471"),
	White:      hex("#ffffff"),
	Secondary:  hex("#6288b5"),
	Command:    hex("#6bcbff"),
	Accent:     hex("#ff9f43"),
	Text:       hex("#e8e8e8"),

	Terminal:    hex("#1a1a2e"),
	TitleBar:    hex("#252540"),
	Border:      hex("#3a3a5a"),
	ChromeTitle: hex("#888888"),
	Rule:        hex("#444444"),
	Lights:      [3]color.RGBA{hex("#ff5f57"), hex("#febc2e"), hex("#28c840")},

	String:  hex("#7ec87e"),
	Key:     hex("#6bb8ff"),
	Bracket: hex("#b794f6"),
	Success: hex("#4ade80"),
	Muted:   hex("#888888"),
}

// Role returns the colour for an output span role.
func (p Palette) Role(r Role) color.RGBA {
	switch r {
	case RoleKey:
		return p.Key
	case RoleString:
		return p.String
	case RoleBracket:
		return p.Bracket
	case RoleSuccess:
		return p.Success
	case RoleMuted:
		return p.Muted
	default:
		return p.Text
	}
}

func hex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		panic(fmt.Sprintf("bad colour %q: %v", s, err))
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
