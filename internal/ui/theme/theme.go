// Package theme holds the terminal styles used by the developer commands.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — kid-friendly, bright but not garish
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Question card and its parts
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Digit = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	BlankDigit = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Rule = lipgloss.NewStyle().
		Foreground(Secondary)
)

// States
var (
	Validated = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Fallback = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
