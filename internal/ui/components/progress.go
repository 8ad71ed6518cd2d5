package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional
// "answered/total" counter.
type ProgressBar struct {
	Label     string
	Current   int
	Total     int
	ShowCount bool
	Width     int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, current, total int, showCount bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Current:   current,
		Total:     total,
		ShowCount: showCount,
		Width:     width,
	}
}

// Percent returns progress as a fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	countWidth := 0
	if p.ShowCount {
		countWidth = len(fmt.Sprintf("  %d/%d", p.Total, p.Total))
	}

	barWidth := p.Width - labelWidth - countWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowCount {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d", p.Current, p.Total))
	}

	return result
}
