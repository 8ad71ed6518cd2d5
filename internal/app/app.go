// Package app hosts the root Bubble Tea model framing every screen
// with the shared header and footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/screens/home"
	"github.com/luminamente/anima/internal/screens/register"
	"github.com/luminamente/anima/internal/screens/welcome"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/ui/layout"
)

// Model is the root Bubble Tea model.
type Model struct {
	sess   *session.Session
	router *router.Router
	width  int
	height int
}

// newModel creates the root model. The welcome splash transitions to
// registration for new users and straight to home for returning ones.
func newModel(sess *session.Session) Model {
	next := func() screen.Screen {
		if sess.Identity.Authenticated() {
			return home.New(sess)
		}
		return register.New(sess)
	}
	return Model{
		sess:   sess,
		router: router.New(welcome.New(next)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(
		title,
		m.sess.Missions.CompletedCount(),
		len(m.sess.Missions.Missions()),
		m.width,
	)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m Model) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Voltar"},
			{Key: "Ctrl+C", Description: "Sair"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Selecionar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

// Run starts the Bubble Tea program over the given session.
func Run(sess *session.Session) error {
	p := tea.NewProgram(newModel(sess))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
