package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette using standard terminal colors for better compatibility
var (
	primaryColor = lipgloss.Color("14") // Bright Cyan
	accentColor  = lipgloss.Color("10") // Bright Green
	errorColor   = lipgloss.Color("9")  // Bright Red

	bgDark    = lipgloss.Color("235") // Dark gray
	bgLighter = lipgloss.Color("241") // Lighter gray

	textPrimary   = lipgloss.Color("15") // Bright White
	textSecondary = lipgloss.Color("7")  // White
	textMuted     = lipgloss.Color("8")  // Bright Black (gray)
)

// revealPalette is walked from dim to bright while a new fact fades in.
var revealPalette = []lipgloss.Color{"236", "238", "240", "243", "246", "249", "252", textPrimary}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	// Card around the fact
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(bgLighter).
			Padding(1, 2)

	errorCardStyle = cardStyle.
			BorderForeground(errorColor)

	factStyle = lipgloss.NewStyle().
			Foreground(textPrimary)

	attributionStyle = lipgloss.NewStyle().
				Foreground(textMuted).
				Faint(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(errorColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	loadingTextStyle = lipgloss.NewStyle().
				Foreground(textMuted).
				Italic(true)

	// Manual-copy overlay
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primaryColor).
			Background(bgDark).
			Foreground(textSecondary).
			Padding(1, 2)

	modalHintStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			MarginTop(1)
)
