package tui

import "github.com/charmbracelet/lipgloss"

// Color palette of the directory in light and dark mode.
var (
	LightBackground = lipgloss.Color("#fafafa")
	LightForeground = lipgloss.Color("#111517")
	LightElement    = lipgloss.Color("#ffffff")
	LightMuted      = lipgloss.Color("#858585")

	DarkBackground = lipgloss.Color("#202c37")
	DarkForeground = lipgloss.Color("#ffffff")
	DarkElement    = lipgloss.Color("#2b3945")
	DarkMuted      = lipgloss.Color("#9aa5b1")

	Accent = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Element    lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Element:    LightElement,
		Muted:      LightMuted,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Element:    DarkElement,
		Muted:      DarkMuted,
		IsDark:     true,
	}
}

// ThemeFor picks the theme for a dark mode flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	App      lipgloss.Style
	Header   lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Chip     lipgloss.Style
	ChipOn   lipgloss.Style
	Empty    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Background(theme.Element).
			Foreground(theme.Foreground).
			Padding(0, 2).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Row: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		Selected: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Accent),

		Chip: lipgloss.NewStyle().
			Background(theme.Element).
			Foreground(theme.Foreground).
			Padding(0, 1).
			MarginRight(1),

		ChipOn: lipgloss.NewStyle().
			Background(Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			MarginRight(1),

		Empty: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			PaddingLeft(2),
	}
}
