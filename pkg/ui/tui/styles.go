package tui

import (
	"github.com/charmbracelet/lipgloss"
	"igdebugger/pkg/ui"
)

var (
	neonCyan    = lipgloss.Color("#00FFFF")
	neonMagenta = lipgloss.Color("#FF00FF")
	neonGreen   = lipgloss.Color("#39FF14")
	neonYellow  = lipgloss.Color("#FFFF00")
	neonOrange  = lipgloss.Color("#FF6700")
	alertRed    = lipgloss.Color("#FF3B3B")
	darkBg      = lipgloss.Color("#0A0E27")
	darkBg2     = lipgloss.Color("#1A1E37")
	dimWhite    = lipgloss.Color("#B0B0B0")
	mutedGray   = lipgloss.Color("#626262")

	titleStyle = lipgloss.NewStyle().
			Background(neonMagenta).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(neonCyan).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Background(neonCyan).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 2).
			MarginLeft(1)

	buttonDisabledStyle = lipgloss.NewStyle().
				Background(darkBg2).
				Foreground(mutedGray).
				Padding(0, 2).
				MarginLeft(1)

	tabStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(darkBg).
			Background(neonGreen).
			Bold(true).
			Padding(0, 1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(alertRed).
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(alertRed).
				PaddingLeft(1)

	headingStyle = lipgloss.NewStyle().
			Foreground(neonMagenta).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(neonYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(alertRed).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(neonOrange).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(neonCyan)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			PaddingLeft(1)
)

func renderer(s lipgloss.Style) func(string) string {
	return func(text string) string { return s.Render(text) }
}

// palette feeds the shared preview writer with this package's styles
func palette() ui.Palette {
	return ui.Palette{
		Title:   renderer(headingStyle),
		Label:   renderer(labelStyle),
		Value:   renderer(valueStyle),
		Error:   renderer(errorStyle),
		Warning: renderer(warningStyle),
		Muted:   renderer(mutedStyle),
		Active:  renderer(tabActiveStyle),
	}
}
