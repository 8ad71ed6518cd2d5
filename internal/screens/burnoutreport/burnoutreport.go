// Package burnoutreport shows the burnout answers and, when an API key
// is configured, an AI-written occupational health analysis.
package burnoutreport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/analysis"
	"github.com/luminamente/anima/internal/catalog"
	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/submit"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

const analysisTimeout = 60 * time.Second

type analysisMsg struct {
	text string
	err  error
}

// BurnoutReportScreen renders the completed burnout questionnaire.
type BurnoutReportScreen struct {
	sess       *session.Session
	offset     int
	delivery   string
	analysis   string
	analysisIn bool
	analysErr  string
}

var _ screen.Screen = (*BurnoutReportScreen)(nil)
var _ screen.KeyHintProvider = (*BurnoutReportScreen)(nil)

// New creates a BurnoutReportScreen.
func New(sess *session.Session) *BurnoutReportScreen {
	return &BurnoutReportScreen{sess: sess}
}

func (s *BurnoutReportScreen) Title() string {
	return "Relatório de Burnout"
}

func (s *BurnoutReportScreen) Init() tea.Cmd {
	return nil
}

func (s *BurnoutReportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Rolar"},
	}
	if s.sess.Analysis != nil && !s.analysisIn {
		hints = append(hints, layout.KeyHint{Key: "a", Description: "Gerar análise"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "r", Description: "Refazer teste"},
		layout.KeyHint{Key: "Esc", Description: "Voltar"},
	)
	return hints
}

func (s *BurnoutReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submit.Result:
		if msg.Instrument == ledger.InstrumentBurnout {
			s.delivery = deliveryStatus(msg.Err)
		}
		return s, nil

	case analysisMsg:
		s.analysisIn = false
		if msg.err != nil {
			s.analysErr = "Não foi possível gerar a análise. Verifique sua chave de API."
		} else {
			s.analysis = msg.text
			s.analysErr = ""
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "a":
			return s, s.generateAnalysis()
		case "r":
			s.sess.Burnout.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// generateAnalysis asks the configured provider for the report text.
func (s *BurnoutReportScreen) generateAnalysis() tea.Cmd {
	if s.sess.Analysis == nil || s.analysisIn {
		return nil
	}
	s.analysisIn = true
	s.analysErr = ""

	provider := s.sess.Analysis
	user, _ := s.sess.Identity.User()
	prompt := analysis.BuildPrompt(user, s.sess.Burnout)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()
		text, err := provider.Complete(ctx, analysis.SystemPrompt, prompt)
		return analysisMsg{text: text, err: err}
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

func (s *BurnoutReportScreen) View(width, height int) string {
	if !s.sess.Burnout.Completed() {
		msg := theme.Hint.Render("Complete o teste de burnout para ver seu relatório.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	innerWidth := min(width-8, 72)
	var lines []string

	lines = append(lines, theme.Title.Render("Seu Relatório de Burnout Profissional"), "")

	for _, q := range s.sess.Burnout.Questions() {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("%d. %s", q.ID, q.Text)))
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("   "+catalog.FormatAnswer(q)))

		if q.Sub != nil && q.Sub.Answer != nil && s.sess.Burnout.SubVisible(q.ID) {
			lines = append(lines, theme.Hint.Render("   "+q.Sub.Text))
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).
				Render("   "+*q.Sub.Answer))
		}
		lines = append(lines, "")
	}

	switch {
	case s.analysisIn:
		lines = append(lines, theme.Hint.Render("Gerando análise..."), "")
	case s.analysErr != "":
		lines = append(lines, theme.Warning.Render(s.analysErr), "")
	case s.analysis != "":
		lines = append(lines, theme.Title.Render("Análise"), "")
		wrapped := lipgloss.NewStyle().Width(innerWidth).Foreground(theme.Text).Render(s.analysis)
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	case s.sess.Analysis != nil:
		lines = append(lines, theme.Hint.Render("Pressione a para gerar uma análise com IA."), "")
	}

	if s.delivery != "" {
		lines = append(lines, theme.Subtitle.Render(s.delivery))
	}

	// Simple line-based scroll window.
	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	if s.offset > len(lines)-visible {
		s.offset = max(len(lines)-visible, 0)
	}
	end := min(s.offset+visible, len(lines))
	body := strings.Join(lines[s.offset:end], "\n")

	card := theme.Card.Width(min(width-4, 76)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
