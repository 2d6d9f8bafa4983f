// Package output provides styled terminal rendering for echosense:
// shared lipgloss styles, priority-tier styling, score bars, and the
// table and suggestion renderers.
package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/echosense-labs/echosense/internal/podcast"
)

// Palette. The priority tiers map onto it below.
var (
	ColorPrimary = lipgloss.Color("#64b5f6")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorError   = lipgloss.Color("#ef5350")
	ColorWarning = lipgloss.Color("#fff59d")
	ColorMuted   = lipgloss.Color("#888888")
)

// General-purpose styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for risk content and failures.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for field labels.
	StyleLabel = lipgloss.NewStyle().
			Width(14)
)

// Tier styles keep priority rendering consistent between the live run
// view, the alert block, and history output. Critical and high carry
// color because they are the tiers that can interrupt the user.
var (
	StyleCritical = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleHigh     = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleMedium   = lipgloss.NewStyle().Bold(true)
	StyleLow      = lipgloss.NewStyle().Foreground(ColorMuted)
)

// PriorityStyle returns the tier style for a priority.
func PriorityStyle(p podcast.Priority) lipgloss.Style {
	switch p {
	case podcast.PriorityCritical:
		return StyleCritical
	case podcast.PriorityHigh:
		return StyleHigh
	case podcast.PriorityMedium:
		return StyleMedium
	default:
		return StyleLow
	}
}

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	if !disabled {
		return
	}
	plain := lipgloss.NewStyle()
	StyleHeader = plain
	StyleSuccess = plain
	StyleError = plain
	StyleWarning = plain
	StyleMuted = plain
	StyleBold = plain
	StyleLabel = plain.Width(14)
	StyleCritical = plain
	StyleHigh = plain
	StyleMedium = plain
	StyleLow = plain
}
