package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the preview chrome. Curve colors come from the render config.
type Theme struct {
	Name   string
	Axis   lipgloss.Color
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:   "dark",
		Axis:   lipgloss.Color("#DDDDDD"),
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#00ccff"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Axis:   lipgloss.Color("#00cc00"),
		Title:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Axis:   lipgloss.Color("#888888"),
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
	}

	Themes = []Theme{
		ThemeDark,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the dark theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
