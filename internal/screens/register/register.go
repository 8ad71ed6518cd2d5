// Package register implements the identity gate: the user enrolls with
// name, email and gender before any questionnaire opens.
package register

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/identity"
	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/screens/home"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/ui/components"
	"github.com/luminamente/anima/internal/ui/layout"
	"github.com/luminamente/anima/internal/ui/theme"
)

// field indexes in tab order
const (
	fieldName = iota
	fieldEmail
	fieldGender
	fieldSubmit
	fieldCount
)

var genderOptions = []string{"Feminino", "Masculino", "Outro", "Prefiro não informar"}

// RegisterScreen collects the user's identity.
type RegisterScreen struct {
	sess    *session.Session
	name    components.TextInput
	email   components.TextInput
	gender  components.ChoicePicker
	focus   int
	errText string
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates a RegisterScreen.
func New(sess *session.Session) *RegisterScreen {
	s := &RegisterScreen{
		sess:   sess,
		name:   components.NewTextInput("Seu nome", 60),
		email:  components.NewTextInput("voce@exemplo.com", 80),
		gender: components.NewChoicePicker(genderOptions, nil, nil),
	}
	return s
}

func (s *RegisterScreen) Title() string {
	return "Cadastro"
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Próximo campo"},
		{Key: "Enter", Description: "Confirmar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			switch s.focus {
			case fieldName, fieldEmail:
				return s, s.setFocus(s.focus + 1)
			case fieldGender:
				// Record the choice, then move on.
				var cmd tea.Cmd
				s.gender, cmd = s.gender.Update(msg)
				return s, tea.Batch(cmd, s.setFocus(fieldSubmit))
			case fieldSubmit:
				return s, s.submit()
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldEmail:
		s.email, cmd = s.email.Update(msg)
	case fieldGender:
		s.gender, cmd = s.gender.Update(msg)
	}
	return s, cmd
}

func (s *RegisterScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.email.Blur()
	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldEmail:
		return s.email.Focus()
	}
	return nil
}

func (s *RegisterScreen) submit() tea.Cmd {
	_, err := s.sess.Identity.Register(s.name.Value(), s.email.Value(), s.gender.Value())
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrNameRequired):
			s.errText = "Informe seu nome para continuar."
			return s.setFocus(fieldName)
		case errors.Is(err, identity.ErrEmailRequired):
			s.errText = "Informe um email válido."
			return s.setFocus(fieldEmail)
		default:
			s.errText = err.Error()
			return nil
		}
	}

	s.errText = ""
	sess := s.sess
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home.New(sess)}
	}
}

func (s *RegisterScreen) View(width, height int) string {
	label := func(text string, active bool) string {
		if active {
			return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(text)
		}
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
	}

	var b strings.Builder

	b.WriteString(theme.Title.Render("Antes de começar, conte um pouco sobre você"))
	b.WriteString("\n\n")

	b.WriteString(label("Nome", s.focus == fieldName) + "\n")
	b.WriteString(s.name.View() + "\n\n")

	b.WriteString(label("Email", s.focus == fieldEmail) + "\n")
	b.WriteString(s.email.View() + "\n\n")

	b.WriteString(label("Gênero", s.focus == fieldGender) + "\n")
	b.WriteString(s.gender.View() + "\n")

	button := components.NewButton("Começar", s.focus == fieldSubmit, nil)
	b.WriteString(button.View() + "\n")

	if s.errText != "" {
		b.WriteString("\n" + theme.Warning.Render(s.errText) + "\n")
	}

	card := theme.Card.Width(min(width-4, 64)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
