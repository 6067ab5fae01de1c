package tui

import "github.com/charmbracelet/lipgloss"

var (
	elasticBlue   = lipgloss.Color("#0077CC")
	elasticTeal   = lipgloss.Color("#00BFB3")
	elasticPink   = lipgloss.Color("#F04E98")
	elasticYellow = lipgloss.Color("#FEC514")
	elasticDark   = lipgloss.Color("#343741")
	mutedGray     = lipgloss.Color("#98A2B3")
	errorRed      = lipgloss.Color("#BD271E")
	successGreen  = lipgloss.Color("#54B399")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(elasticTeal)

	navItemStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(mutedGray)
	navActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(elasticBlue)
	tipStyle       = lipgloss.NewStyle().Italic(true).Foreground(elasticYellow)

	helpStyle  = lipgloss.NewStyle().Foreground(mutedGray)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorRed)

	userLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(elasticBlue)
	modelLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(elasticTeal)

	// rendered text
	headingStyles = [...]lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Underline(true).Foreground(elasticTeal),
		lipgloss.NewStyle().Bold(true).Foreground(elasticBlue),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
	}
	boldStyle     = lipgloss.NewStyle().Bold(true).Foreground(elasticYellow)
	codeStyle     = lipgloss.NewStyle().Foreground(elasticPink)
	linkStyle     = lipgloss.NewStyle().Underline(true).Foreground(elasticBlue)
	codeLineStyle = lipgloss.NewStyle().Foreground(elasticTeal)
	calloutStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(elasticYellow).
			PaddingLeft(1)
	calloutLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(elasticYellow)
	bulletStyle       = lipgloss.NewStyle().Foreground(elasticTeal)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(elasticTeal)
	correctStyle  = lipgloss.NewStyle().Bold(true).Foreground(successGreen)
	wrongStyle    = lipgloss.NewStyle().Bold(true).Foreground(errorRed)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(26)
)
