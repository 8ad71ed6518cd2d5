// Package quiz runs the generic self-knowledge questionnaire, one
// question per card.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/screens/report"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/submit"
	"github.com/luminamente/anima/internal/ui/components"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

const submitTimeout = 30 * time.Second

// QuizScreen steps through the quiz questions.
type QuizScreen struct {
	sess   *session.Session
	index  int
	picker components.ChoicePicker
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen positioned at the first unanswered question.
func New(sess *session.Session) *QuizScreen {
	s := &QuizScreen{sess: sess}
	s.index = firstUnanswered(sess.Quiz)
	s.loadQuestion()
	return s
}

// firstUnanswered returns the index of the first open question, or 0.
func firstUnanswered(l *ledger.Ledger) int {
	for i, q := range l.Questions() {
		if !q.Answered() {
			return i
		}
	}
	return 0
}

func (s *QuizScreen) Title() string {
	return "Questionário"
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Opções"},
		{Key: "←→", Description: "Perguntas"},
		{Key: "Enter", Description: "Responder"},
		{Key: "Esc", Description: "Voltar"},
	}
}

// loadQuestion rebuilds the picker for the current question.
func (s *QuizScreen) loadQuestion() {
	q, ok := s.sess.Quiz.QuestionAt(s.index)
	if !ok {
		return
	}

	id := q.ID
	s.picker = components.NewChoicePicker(q.Options, nil, func(option string) tea.Cmd {
		return s.answer(id, option)
	})
	if q.Answer != nil {
		s.picker.SetChosen(*q.Answer)
	}
}

// answer records the option and advances to the next question.
func (s *QuizScreen) answer(id int, option string) tea.Cmd {
	s.sess.Quiz.SetAnswer(id, option)
	if s.index < s.sess.Quiz.Len()-1 {
		s.index++
		s.loadQuestion()
	} else {
		s.loadQuestion()
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			if s.index > 0 {
				s.index--
				s.loadQuestion()
			}
			return s, nil
		case "right", "l":
			if s.index < s.sess.Quiz.Len()-1 {
				s.index++
				s.loadQuestion()
			}
			return s, nil
		case "f":
			if s.sess.Quiz.AnsweredCount() == s.sess.Quiz.Len() {
				return s, s.finish()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)
	return s, cmd
}

// finish marks the quiz complete, fires the webhook delivery and swaps
// in the report.
func (s *QuizScreen) finish() tea.Cmd {
	s.sess.Quiz.MarkCompleted()

	sess := s.sess
	deliver := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		err := sess.Submit(ctx, ledger.InstrumentQuiz)
		return submit.Result{Instrument: ledger.InstrumentQuiz, Err: err}
	}
	show := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: report.New(sess)}
	}
	return tea.Batch(show, deliver)
}

func (s *QuizScreen) View(width, height int) string {
	q, ok := s.sess.Quiz.QuestionAt(s.index)
	if !ok {
		return ""
	}

	var b strings.Builder

	bar := components.NewProgressBar("", s.sess.Quiz.AnsweredCount(), s.sess.Quiz.Len(), true, min(width-8, 60))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Pergunta %d de %d", s.index+1, s.sess.Quiz.Len())))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(s.picker.View())

	if s.sess.Quiz.AnsweredCount() == s.sess.Quiz.Len() {
		b.WriteString("\n")
		if s.sess.Quiz.Completed() && s.sess.Quiz.MarkedCompleted() {
			b.WriteString(theme.Done.Render("Questionário concluído."))
		} else {
			b.WriteString(theme.Hint.Render("Todas respondidas — pressione f para finalizar"))
		}
		b.WriteString("\n")
	}

	card := theme.Card.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
