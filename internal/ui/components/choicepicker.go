package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/ui/theme"
)

// ChoicePicker selects one option from a list. Unlike a graded quiz
// there is no right answer: picking an option records it and the picker
// stays editable so the user can change their mind.
type ChoicePicker struct {
	Options  []string
	Labels   []string
	Selected int
	Chosen   int
	OnChoose func(option string) tea.Cmd
}

// NewChoicePicker creates a picker over the given options. Labels
// renders an A) B) C) prefix when the options are free text; pass nil
// when the options are already letter codes.
func NewChoicePicker(options []string, labels []string, onChoose func(string) tea.Cmd) ChoicePicker {
	return ChoicePicker{
		Options:  options,
		Labels:   labels,
		Chosen:   -1,
		OnChoose: onChoose,
	}
}

// SetChosen preselects the option matching a previously recorded answer.
func (c *ChoicePicker) SetChosen(option string) {
	c.Chosen = -1
	for i, opt := range c.Options {
		if opt == option {
			c.Chosen = i
			c.Selected = i
			return
		}
	}
}

// Init returns nil.
func (c ChoicePicker) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Typing an option's
// letter jumps straight to it.
func (c ChoicePicker) Update(msg tea.Msg) (ChoicePicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		return c.choose(c.Selected)
	default:
		if i := c.letterIndex(key); i >= 0 {
			return c.choose(i)
		}
	}

	return c, nil
}

func (c ChoicePicker) choose(i int) (ChoicePicker, tea.Cmd) {
	if i < 0 || i >= len(c.Options) {
		return c, nil
	}
	c.Selected = i
	c.Chosen = i
	if c.OnChoose != nil {
		return c, c.OnChoose(c.Options[i])
	}
	return c, nil
}

// letterIndex maps a typed letter to an option index, or -1.
func (c ChoicePicker) letterIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	upper := strings.ToUpper(key)
	for i := range c.Options {
		if c.label(i) == upper {
			return i
		}
	}
	return -1
}

// label returns the display letter for option i.
func (c ChoicePicker) label(i int) string {
	if c.Labels != nil && i < len(c.Labels) {
		return c.Labels[i]
	}
	return string(rune('A' + i))
}

// View renders the picker.
func (c ChoicePicker) View() string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}

		mark := " "
		if i == c.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, c.label(i), opt)

		switch {
		case i == c.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case i == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// Value returns the chosen option, or "" when nothing is chosen yet.
func (c ChoicePicker) Value() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}
