package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — calm, muted tones for a wellbeing app
var (
	Primary   = lipgloss.Color("#7C9885") // Sage Green
	Secondary = lipgloss.Color("#6B8CAE") // Dusty Blue
	Accent    = lipgloss.Color("#D4A373") // Warm Sand
	Success   = lipgloss.Color("#8FBC8F") // Soft Green
	Error     = lipgloss.Color("#C97064") // Muted Terracotta
	Text      = lipgloss.Color("#F5F2EB") // Warm White
	TextDim   = lipgloss.Color("#9A9A8F") // Warm Gray
	BgDark    = lipgloss.Color("#1C1F1D") // Deep Forest
	BgCard    = lipgloss.Color("#2A2E2B") // Dark Moss
	Border    = lipgloss.Color("#434A45") // Muted Olive
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Pending = lipgloss.NewStyle().
		Foreground(TextDim)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
