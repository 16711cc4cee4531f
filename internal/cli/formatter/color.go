package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorBg     = lipgloss.Color("#282828")
	ColorBgSoft = lipgloss.Color("#3c3836")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the tint used for a verdict. Pending is dim.
func StatusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusPass:
		return StyleGreen
	case domain.StatusWarning:
		return StyleYellow
	case domain.StatusFail:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusColor returns the palette color of a verdict.
func StatusColor(status domain.Status) lipgloss.Color {
	switch status {
	case domain.StatusPass:
		return ColorGreen
	case domain.StatusWarning:
		return ColorYellow
	case domain.StatusFail:
		return ColorRed
	default:
		return ColorDim
	}
}

// StatusBadge renders a verdict as a filled pill, e.g. " FAIL ".
func StatusBadge(status domain.Status) string {
	return lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(StatusColor(status)).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(status.String()))
}

// StatusIndicator returns a colored dot followed by the status name.
func StatusIndicator(status domain.Status) string {
	return StatusStyle(status).Render("● " + status.String())
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders an error message the way every surface reports failures.
func Error(err error) string {
	return StyleRed.Render("Error: ") + err.Error()
}

// Success renders a check mark followed by msg.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}
