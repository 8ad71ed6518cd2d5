// Package home is the main menu after the identity gate.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/screens/anamnese"
	"github.com/luminamente/anima/internal/screens/burnout"
	"github.com/luminamente/anima/internal/screens/missions"
	"github.com/luminamente/anima/internal/screens/quiz"
	"github.com/luminamente/anima/internal/screens/report"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/ui/components"
	"github.com/luminamente/anima/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(sess *session.Session) *HomeScreen {
	h := &HomeScreen{sess: sess}

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: factory()}
			}
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "QUESTIONÁRIO INICIAL", Action: push(func() screen.Screen { return quiz.New(sess) })},
		{Label: "ANAMNESE", Action: push(func() screen.Screen { return anamnese.New(sess) })},
		{Label: "TESTE DE BURNOUT", Action: push(func() screen.Screen { return burnout.New(sess) })},
		{Label: "MISSÕES", Action: push(func() screen.Screen { return missions.New(sess) })},
		{Label: "RELATÓRIOS", Action: push(func() screen.Screen { return report.New(sess) })},
		{Label: "SAIR", Action: func() tea.Cmd { return tea.Quit }},
	})

	return h
}

func (h *HomeScreen) Title() string {
	return "Início"
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refreshNotes recomputes the per-item status notes from live state.
func (h *HomeScreen) refreshNotes() {
	note := func(l *ledger.Ledger) string {
		if l.Completed() {
			return "concluído ✓"
		}
		if l.AnsweredCount() == 0 {
			return ""
		}
		return fmt.Sprintf("%d/%d", l.AnsweredCount(), l.Len())
	}

	h.menu.Items[0].Note = note(h.sess.Quiz)
	h.menu.Items[1].Note = note(h.sess.Anamnese)
	h.menu.Items[2].Note = note(h.sess.Burnout)
	h.menu.Items[3].Note = fmt.Sprintf("%d/%d", h.sess.Missions.CompletedCount(), len(h.sess.Missions.Missions()))
}

func (h *HomeScreen) View(width, height int) string {
	h.refreshNotes()

	var b strings.Builder

	name := ""
	if user, ok := h.sess.Identity.User(); ok {
		name = user.Name
	}
	b.WriteString(theme.Title.Render("Olá, " + name))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("O que vamos fazer hoje?"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	content := b.String()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
