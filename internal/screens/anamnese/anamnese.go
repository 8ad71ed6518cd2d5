// Package anamnese runs the intake questionnaire, organized in phases.
// Each phase closes automatically when its last question is answered.
package anamnese

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/submit"
	"github.com/luminamente/anima/internal/ui/components"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

const submitTimeout = 30 * time.Second

// AnamneseScreen steps through the intake questions.
type AnamneseScreen struct {
	sess     *session.Session
	index    int
	picker   components.ChoicePicker
	text     components.TextInput
	delivery string
}

var _ screen.Screen = (*AnamneseScreen)(nil)
var _ screen.KeyHintProvider = (*AnamneseScreen)(nil)

// New creates an AnamneseScreen positioned at the first open question.
func New(sess *session.Session) *AnamneseScreen {
	s := &AnamneseScreen{sess: sess}
	for i, q := range sess.Anamnese.Questions() {
		if !q.Answered() {
			s.index = i
			break
		}
	}
	s.loadQuestion()
	return s
}

func (s *AnamneseScreen) Title() string {
	return "Anamnese"
}

func (s *AnamneseScreen) Init() tea.Cmd {
	return s.focusCmd()
}

func (s *AnamneseScreen) KeyHints() []layout.KeyHint {
	q, _ := s.sess.Anamnese.QuestionAt(s.index)
	if q.Kind == ledger.KindText {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Registrar"},
			{Key: "←→", Description: "Perguntas"},
			{Key: "Esc", Description: "Voltar"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Opções"},
		{Key: "←→", Description: "Perguntas"},
		{Key: "Enter", Description: "Responder"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *AnamneseScreen) loadQuestion() {
	q, ok := s.sess.Anamnese.QuestionAt(s.index)
	if !ok {
		return
	}

	if q.Kind == ledger.KindText {
		s.text = components.NewTextInput("Sua resposta...", 200)
		if q.Answer != nil {
			s.text.SetValue(*q.Answer)
		}
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

// focusCmd focuses the text input when the current question is free-form.
func (s *AnamneseScreen) focusCmd() tea.Cmd {
	if q, ok := s.sess.Anamnese.QuestionAt(s.index); ok && q.Kind == ledger.KindText {
		return s.text.Focus()
	}
	return nil
}

func (s *AnamneseScreen) answer(id int, value string) tea.Cmd {
	s.sess.Anamnese.SetAnswer(id, value)
	if s.index < s.sess.Anamnese.Len()-1 {
		s.index++
	}
	s.loadQuestion()
	return s.focusCmd()
}

func (s *AnamneseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submit.Result:
		if msg.Instrument == ledger.InstrumentAnamnese {
			s.delivery = deliveryStatus(msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		q, _ := s.sess.Anamnese.QuestionAt(s.index)

		switch msg.String() {
		case "left":
			if s.index > 0 {
				s.index--
				s.loadQuestion()
			}
			return s, s.focusCmd()
		case "right":
			if s.index < s.sess.Anamnese.Len()-1 {
				s.index++
				s.loadQuestion()
			}
			return s, s.focusCmd()
		case "enter":
			if q.Kind == ledger.KindText {
				if v := strings.TrimSpace(s.text.Value()); v != "" {
					return s, s.answer(q.ID, v)
				}
				return s, nil
			}
		case "ctrl+f":
			if s.sess.Anamnese.AnsweredCount() == s.sess.Anamnese.Len() && !s.sess.Anamnese.MarkedCompleted() {
				return s, s.finish()
			}
			return s, nil
		}

		var cmd tea.Cmd
		if q.Kind == ledger.KindText {
			s.text, cmd = s.text.Update(msg)
		} else {
			s.picker, cmd = s.picker.Update(msg)
		}
		return s, cmd
	}

	return s, nil
}

// finish marks the anamnese complete and fires the webhook delivery.
func (s *AnamneseScreen) finish() tea.Cmd {
	s.sess.Anamnese.MarkCompleted()

	sess := s.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		err := sess.Submit(ctx, ledger.InstrumentAnamnese)
		return submit.Result{Instrument: ledger.InstrumentAnamnese, Err: err}
	}
}

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

func (s *AnamneseScreen) View(width, height int) string {
	q, ok := s.sess.Anamnese.QuestionAt(s.index)
	if !ok {
		return ""
	}

	var b strings.Builder

	answered, total := s.sess.Anamnese.SectionProgress(q.Section)
	bar := components.NewProgressBar("", s.sess.Anamnese.AnsweredCount(), s.sess.Anamnese.Len(), true, min(width-8, 60))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%s  (%d/%d)", q.Section, answered, total)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	if q.Kind == ledger.KindText {
		b.WriteString(s.text.View())
		b.WriteString("\n")
	} else {
		b.WriteString(s.picker.View())
	}

	if s.sess.Anamnese.AnsweredCount() == s.sess.Anamnese.Len() {
		b.WriteString("\n")
		if s.sess.Anamnese.MarkedCompleted() {
			b.WriteString(theme.Done.Render("Anamnese concluída."))
		} else {
			b.WriteString(theme.Hint.Render("Todas respondidas — pressione Ctrl+F para finalizar"))
		}
		b.WriteString("\n")
	}

	if s.delivery != "" {
		b.WriteString("\n" + theme.Subtitle.Render(s.delivery) + "\n")
	}

	card := theme.Card.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
