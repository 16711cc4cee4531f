package formatter

import "github.com/charmbracelet/lipgloss"

// Theme holds the panel styles that change with the dark-theme toggle.
type Theme struct {
	Dark      bool
	Panel     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Muted     lipgloss.Style
}

// NewTheme builds the light or dark theme.
func NewTheme(dark bool) Theme {
	t := Theme{
		Dark: dark,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 2),
		Tab:       lipgloss.NewStyle().Foreground(ColorDim).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(ColorBg).Background(ColorHeader).Bold(true).Padding(0, 1),
		Muted:     StyleDim,
	}
	if dark {
		t.Panel = t.Panel.
			Background(ColorBg).
			Foreground(ColorFg).
			BorderForeground(ColorBgSoft).
			BorderBackground(ColorBg)
		t.Tab = t.Tab.Background(ColorBgSoft)
		t.Muted = t.Muted.Background(ColorBg)
	}
	return t
}

// Name is the config spelling of the theme.
func (t Theme) Name() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}
