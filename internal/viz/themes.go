package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the frame and text around a preview. The attractor itself
// always uses its map colors.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Border    lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeJulia = Theme{
		Name:      "julia",
		Primary:   lipgloss.Color("#4063d8"),
		Secondary: lipgloss.Color("#9558b2"),
		Border:    lipgloss.Color("#389826"),
		Muted:     lipgloss.Color("#888899"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Border:    lipgloss.Color("#444444"),
		Muted:     lipgloss.Color("#888888"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Border:    lipgloss.Color("#444466"),
		Muted:     lipgloss.Color("#666688"),
	}

	Themes = []Theme{ThemeJulia, ThemeMinimal, ThemeCyberpunk}
)

// GetTheme returns the named theme, or the julia theme for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeJulia
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
