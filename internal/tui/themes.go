package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
)

// Theme defines the board palette and HUD accents.
type Theme struct {
	Name       string
	Live       lipgloss.Color
	Dead       lipgloss.Color
	Caret      lipgloss.Color
	RewindLive lipgloss.Color
	RewindDead lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeRetro = Theme{
		Name:       "retro",
		Live:       lipgloss.Color("#00ff00"), // green phosphor
		Dead:       lipgloss.Color("#004400"),
		Caret:      lipgloss.Color("#ffff00"),
		RewindLive: lipgloss.Color("#00ccff"),
		RewindDead: lipgloss.Color("#003355"),
		Accent:     lipgloss.Color("#88ff88"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeNeon = Theme{
		Name:       "neon",
		Live:       lipgloss.Color("#ff00ff"),
		Dead:       lipgloss.Color("#2a002a"),
		Caret:      lipgloss.Color("#ffff00"),
		RewindLive: lipgloss.Color("#00ffff"),
		RewindDead: lipgloss.Color("#002a2a"),
		Accent:     lipgloss.Color("#00ffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Live:       lipgloss.Color("#ffffff"),
		Dead:       lipgloss.Color("#333333"),
		Caret:      lipgloss.Color("#0088ff"),
		RewindLive: lipgloss.Color("#aaaaaa"),
		RewindDead: lipgloss.Color("#222222"),
		Accent:     lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Live:       lipgloss.Color("#00a8cc"),
		Dead:       lipgloss.Color("#001a33"),
		Caret:      lipgloss.Color("#ffd700"),
		RewindLive: lipgloss.Color("#ff6b6b"),
		RewindDead: lipgloss.Color("#2d1b2e"),
		Accent:     lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{ThemeRetro, ThemeNeon, ThemeMono, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to retro.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeRetro
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) style(c console.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch c {
	case console.Live:
		return s.Foreground(t.Live)
	case console.Dead:
		return s.Foreground(t.Dead)
	case console.CaretDead, console.CaretLive:
		return s.Foreground(t.Caret).Bold(true)
	case console.RewindLive:
		return s.Foreground(t.RewindLive)
	case console.RewindDead:
		return s.Foreground(t.RewindDead)
	}
	return s
}

// glyph is two runes wide so that cells come out roughly square.
func glyph(c console.Color) string {
	switch c {
	case console.Live, console.RewindLive:
		return "██"
	case console.Dead, console.RewindDead:
		return "· "
	case console.CaretDead:
		return "[]"
	case console.CaretLive:
		return "▓▓"
	}
	return "  "
}
