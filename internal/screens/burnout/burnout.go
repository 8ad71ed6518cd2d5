// Package burnout runs the professional burnout questionnaire: an A-E
// frequency scale per question, with a follow-up prompt whenever the
// answer lands in the upper range.
package burnout

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/catalog"
	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/screens/burnoutreport"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/submit"
	"github.com/luminamente/anima/internal/ui/components"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

const submitTimeout = 30 * time.Second

var scaleLetters = []string{"A", "B", "C", "D", "E"}

type mode int

const (
	modePick mode = iota
	modeSub
)

// BurnoutScreen steps through the burnout questions.
type BurnoutScreen struct {
	sess   *session.Session
	index  int
	mode   mode
	picker components.ChoicePicker
	sub    components.TextInput
}

var _ screen.Screen = (*BurnoutScreen)(nil)
var _ screen.KeyHintProvider = (*BurnoutScreen)(nil)

// New creates a BurnoutScreen positioned at the first unanswered question.
func New(sess *session.Session) *BurnoutScreen {
	s := &BurnoutScreen{sess: sess}
	for i, q := range sess.Burnout.Questions() {
		if !q.Answered() {
			s.index = i
			break
		}
	}
	s.loadQuestion()
	return s
}

func (s *BurnoutScreen) Title() string {
	return "Teste de Burnout"
}

func (s *BurnoutScreen) Init() tea.Cmd {
	return nil
}

func (s *BurnoutScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeSub {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Registrar"},
			{Key: "Tab", Description: "Pular"},
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

// loadQuestion rebuilds the picker for the current question. Scale
// options display their frequency labels but record the letter.
func (s *BurnoutScreen) loadQuestion() {
	s.mode = modePick
	q, ok := s.sess.Burnout.QuestionAt(s.index)
	if !ok {
		return
	}

	labels := make([]string, len(scaleLetters))
	for i, letter := range scaleLetters {
		labels[i] = catalog.ScaleLabel(letter)
	}

	id := q.ID
	s.picker = components.NewChoicePicker(labels, scaleLetters, func(displayed string) tea.Cmd {
		return s.answer(id, letterFor(displayed))
	})
	if q.Answer != nil {
		s.picker.SetChosen(catalog.ScaleLabel(*q.Answer))
	}
}

// letterFor maps a frequency label back to its scale letter.
func letterFor(label string) string {
	for _, letter := range scaleLetters {
		if catalog.ScaleLabel(letter) == label {
			return letter
		}
	}
	return label
}

// answer records the scale letter. When the answer triggers the
// follow-up prompt the screen switches to the sub-answer input,
// otherwise it advances.
func (s *BurnoutScreen) answer(id int, letter string) tea.Cmd {
	s.sess.Burnout.SetAnswer(id, letter)

	if s.sess.Burnout.SubVisible(id) {
		q, _ := s.sess.Burnout.Question(id)
		s.sub = components.NewTextInput("Conte um pouco mais...", 200)
		if q.Sub != nil && q.Sub.Answer != nil {
			s.sub.SetValue(*q.Sub.Answer)
		}
		s.mode = modeSub
		return s.sub.Focus()
	}

	s.advance()
	return nil
}

func (s *BurnoutScreen) advance() {
	if s.index < s.sess.Burnout.Len()-1 {
		s.index++
	}
	s.loadQuestion()
}

func (s *BurnoutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if s.mode == modeSub {
			switch kmsg.String() {
			case "enter":
				q, _ := s.sess.Burnout.QuestionAt(s.index)
				if v := strings.TrimSpace(s.sub.Value()); v != "" {
					s.sess.Burnout.SetSubAnswer(q.ID, v)
				}
				s.advance()
				return s, nil
			case "tab":
				s.advance()
				return s, nil
			}
			var cmd tea.Cmd
			s.sub, cmd = s.sub.Update(msg)
			return s, cmd
		}

		switch kmsg.String() {
		case "left", "h":
			if s.index > 0 {
				s.index--
				s.loadQuestion()
			}
			return s, nil
		case "right", "l":
			if s.index < s.sess.Burnout.Len()-1 {
				s.index++
				s.loadQuestion()
			}
			return s, nil
		case "f":
			if s.sess.Burnout.AnsweredCount() == s.sess.Burnout.Len() {
				return s, s.finish()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)
	return s, cmd
}

// finish marks the test complete, fires the webhook delivery and swaps
// in the report.
func (s *BurnoutScreen) finish() tea.Cmd {
	s.sess.Burnout.MarkCompleted()

	sess := s.sess
	deliver := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		err := sess.Submit(ctx, ledger.InstrumentBurnout)
		return submit.Result{Instrument: ledger.InstrumentBurnout, Err: err}
	}
	show := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: burnoutreport.New(sess)}
	}
	return tea.Batch(show, deliver)
}

func (s *BurnoutScreen) View(width, height int) string {
	q, ok := s.sess.Burnout.QuestionAt(s.index)
	if !ok {
		return ""
	}

	var b strings.Builder

	bar := components.NewProgressBar("", s.sess.Burnout.AnsweredCount(), s.sess.Burnout.Len(), true, min(width-8, 60))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if q.Section != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(q.Section))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Pergunta %d de %d", s.index+1, s.sess.Burnout.Len())))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	if s.mode == modeSub {
		if q.Sub != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(q.Sub.Text))
			b.WriteString("\n")
		}
		b.WriteString(s.sub.View())
		b.WriteString("\n")
	} else {
		b.WriteString(s.picker.View())
	}

	if s.sess.Burnout.AnsweredCount() == s.sess.Burnout.Len() && s.mode == modePick {
		b.WriteString("\n")
		if s.sess.Burnout.MarkedCompleted() {
			b.WriteString(theme.Done.Render("Teste concluído."))
		} else {
			b.WriteString(theme.Hint.Render("Todas respondidas — pressione f para finalizar"))
		}
		b.WriteString("\n")
	}

	card := theme.Card.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
