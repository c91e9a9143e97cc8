package viz

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme defines the color scheme for the typing view and its effects
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Correct   lipgloss.Color
	Incorrect lipgloss.Color
	BarFrom   lipgloss.Color
	BarTo     lipgloss.Color
	BarEmpty  lipgloss.Color
	Snow      []string
	Sparks    []string
	Bolt      string
}

// Available themes
var (
	ThemeWinter = Theme{
		Name:      "winter",
		Primary:   lipgloss.Color("#22d3ee"),
		Text:      lipgloss.Color("#f5f5f4"),
		Muted:     lipgloss.Color("#78716c"),
		Correct:   lipgloss.Color("#22c55e"), // green-500
		Incorrect: lipgloss.Color("#ef4444"), // red-500
		BarFrom:   lipgloss.Color("#22d3ee"), // cyan-400
		BarTo:     lipgloss.Color("#155e75"), // cyan-800
		BarEmpty:  lipgloss.Color("#1c1917"),
		Snow:      []string{"#ffffff"},
		Sparks:    []string{"#fde047", "#facc15", "#fb923c", "#ffffff", "#67e8f9"},
		Bolt:      "#ffffff",
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#00cc00"),
		Muted:     lipgloss.Color("#005500"),
		Correct:   lipgloss.Color("#88ff88"),
		Incorrect: lipgloss.Color("#ff0000"),
		BarFrom:   lipgloss.Color("#00ff00"),
		BarTo:     lipgloss.Color("#005500"),
		BarEmpty:  lipgloss.Color("#001100"),
		Snow:      []string{"#00ff00", "#00cc00", "#88ff88"},
		Sparks:    []string{"#88ff88", "#00ff00"},
		Bolt:      "#ccffcc",
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#cccccc"),
		Muted:     lipgloss.Color("#888888"),
		Correct:   lipgloss.Color("#ffffff"),
		Incorrect: lipgloss.Color("#ff0000"),
		BarFrom:   lipgloss.Color("#ffffff"),
		BarTo:     lipgloss.Color("#888888"),
		BarEmpty:  lipgloss.Color("#222222"),
		Snow:      []string{"#ffffff", "#cccccc"},
		Sparks:    []string{"#ffffff"},
		Bolt:      "#ffffff",
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Correct:   lipgloss.Color("#00ff88"),
		Incorrect: lipgloss.Color("#ff4444"),
		BarFrom:   lipgloss.Color("#00a8cc"),
		BarTo:     lipgloss.Color("#0077be"),
		BarEmpty:  lipgloss.Color("#001a33"),
		Snow:      []string{"#e0f0ff", "#a8d8ff", "#ffffff"},
		Sparks:    []string{"#ffd700", "#00a8cc", "#e0f0ff"},
		Bolt:      "#e0f0ff",
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Correct:   lipgloss.Color("#5fd068"),
		Incorrect: lipgloss.Color("#ff4757"),
		BarFrom:   lipgloss.Color("#feca57"),
		BarTo:     lipgloss.Color("#ff6b6b"),
		BarEmpty:  lipgloss.Color("#2d1b2e"),
		Snow:      []string{"#fff5f5", "#ff9ff3", "#feca57"},
		Sparks:    []string{"#ff9ff3", "#feca57", "#ff6b6b"},
		Bolt:      "#fff5f5",
	}

	// All available themes
	Themes = []Theme{
		ThemeWinter,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to winter.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeWinter
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Color converts a lipgloss color of the form #rrggbb to a colorful.Color.
func Color(c lipgloss.Color) colorful.Color {
	return MustHex(string(c))
}

func (t Theme) SnowPalette() []colorful.Color  { return Palette(t.Snow...) }
func (t Theme) SparkPalette() []colorful.Color { return Palette(t.Sparks...) }
func (t Theme) BoltColor() colorful.Color      { return MustHex(t.Bolt) }
