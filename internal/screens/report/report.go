// Package report renders the quiz answer report and carries the
// submission outcome message shared by the questionnaire screens.
package report

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/catalog"
	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/screens/burnoutreport"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/submit"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

// deliveryStatus renders a delivery outcome for display. A missing
// endpoint means submission is disabled and nothing is shown.
func deliveryStatus(err error) string {
	switch {
	case err == nil:
		return "Respostas enviadas ✓"
	case errors.Is(err, submit.ErrNoEndpoint):
		return ""
	default:
		return "Falha ao enviar respostas (suas respostas continuam salvas)"
	}
}

// ReportScreen lists the quiz questions with their recorded answers.
type ReportScreen struct {
	sess     *session.Session
	offset   int
	delivery string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen.
func New(sess *session.Session) *ReportScreen {
	return &ReportScreen{sess: sess}
}

func (s *ReportScreen) Title() string {
	return "Relatório"
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Rolar"},
	}
	if s.sess.Burnout.Completed() {
		hints = append(hints, layout.KeyHint{Key: "b", Description: "Relatório de burnout"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Voltar"})
	return hints
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submit.Result:
		if msg.Instrument == ledger.InstrumentQuiz {
			s.delivery = deliveryStatus(msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < s.sess.Quiz.Len()-1 {
				s.offset++
			}
		case "b":
			if s.sess.Burnout.Completed() {
				sess := s.sess
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: burnoutreport.New(sess)}
				}
			}
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	if !s.sess.Quiz.Completed() {
		msg := theme.Hint.Render("Complete o questionário inicial para ver seu relatório.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Seu Relatório"))
	b.WriteString("\n\n")

	questions := s.sess.Quiz.Questions()

	// Rough window: each entry takes three lines.
	visible := (height - 6) / 3
	if visible < 1 {
		visible = 1
	}
	if s.offset > len(questions)-visible {
		s.offset = max(len(questions)-visible, 0)
	}

	end := min(s.offset+visible, len(questions))
	for _, q := range questions[s.offset:end] {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("%d. %s", q.ID, q.Text)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("   " + catalog.FormatAnswer(q)))
		b.WriteString("\n\n")
	}

	if end < len(questions) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… mais %d perguntas abaixo", len(questions)-end)))
		b.WriteString("\n")
	}

	if s.delivery != "" {
		b.WriteString("\n" + theme.Subtitle.Render(s.delivery) + "\n")
	}

	card := theme.Card.Width(min(width-4, 76)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
