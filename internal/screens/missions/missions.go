// Package missions shows the mission dashboard grouped by category.
package missions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/mission"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/ui/components"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

var categoryTitles = []struct {
	cat   mission.Category
	title string
}{
	{mission.CategoryAnamnese, "Jornada da Anamnese"},
	{mission.CategoryBurnout, "Jornada do Burnout"},
	{mission.CategoryGeneral, "Missões Gerais"},
}

// MissionsScreen is the mission dashboard.
type MissionsScreen struct {
	sess     *session.Session
	selected int
}

var _ screen.Screen = (*MissionsScreen)(nil)
var _ screen.KeyHintProvider = (*MissionsScreen)(nil)

// New creates a MissionsScreen.
func New(sess *session.Session) *MissionsScreen {
	return &MissionsScreen{sess: sess}
}

func (s *MissionsScreen) Title() string {
	return "Missões"
}

func (s *MissionsScreen) Init() tea.Cmd {
	return nil
}

func (s *MissionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Focar missão"},
		{Key: "Esc", Description: "Voltar"},
	}
}

// ordered returns all missions in dashboard display order.
func (s *MissionsScreen) ordered() []mission.Mission {
	var out []mission.Mission
	for _, group := range categoryTitles {
		out = append(out, s.sess.Missions.ByCategory(group.cat)...)
	}
	return out
}

func (s *MissionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	all := s.ordered()
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(all)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(all) {
			m := all[s.selected]
			if active, ok := s.sess.Missions.Active(); ok && active.ID == m.ID {
				s.sess.Missions.SetActive("")
			} else {
				s.sess.Missions.SetActive(m.ID)
			}
		}
	}
	return s, nil
}

func (s *MissionsScreen) View(width, height int) string {
	var b strings.Builder

	done := s.sess.Missions.CompletedCount()
	total := len(s.sess.Missions.Missions())
	b.WriteString(theme.Title.Render("Suas Missões"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d de %d concluídas", done, total)))
	b.WriteString("\n\n")

	activeID := ""
	if active, ok := s.sess.Missions.Active(); ok {
		activeID = active.ID
	}

	barWidth := min(width-30, 30)
	row := 0
	for _, group := range categoryTitles {
		ms := s.sess.Missions.ByCategory(group.cat)
		if len(ms) == 0 {
			continue
		}

		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(group.title))
		b.WriteString("\n")

		for _, m := range ms {
			marker := "  "
			if row == s.selected {
				marker = "▸ "
			}

			check := "○"
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if m.Completed {
				check = "●"
				style = theme.Done
			}
			if row == s.selected {
				style = style.Bold(true).Foreground(theme.Primary)
			}

			focus := ""
			if m.ID == activeID {
				focus = "  " + theme.Hint.Render("em foco")
			}

			b.WriteString(style.Render(fmt.Sprintf("%s%s %s", marker, check, m.Title)) + focus)
			b.WriteString("\n")

			bar := components.NewProgressBar("     ", int(m.Progress*2), m.TotalSteps*2, false, barWidth)
			b.WriteString(bar.View())
			b.WriteString("  " + theme.Hint.Render(progressLabel(m)))
			b.WriteString("\n")

			row++
		}
		b.WriteString("\n")
	}

	card := theme.Card.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// progressLabel renders progress like "2/5" or "0.5/1".
func progressLabel(m mission.Mission) string {
	if m.Progress == float64(int(m.Progress)) {
		return fmt.Sprintf("%d/%d", int(m.Progress), m.TotalSteps)
	}
	return fmt.Sprintf("%.1f/%d", m.Progress, m.TotalSteps)
}
