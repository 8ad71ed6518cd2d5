package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luminamente/anima/internal/router"
	"github.com/luminamente/anima/internal/screen"
	"github.com/luminamente/anima/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const emblemArt = `     ╭─────────╮
   ╭─┤  ◠   ◠  ├─╮
   │ │    ◡    │ │
   ╰─┤         ├─╯
     ╰────┬────╯
      ~ ~ ┴ ~ ~`

// glow frames cycle around the emblem
var glowFrames = []string{"·", "✧"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning onward.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen
// produced by nextFactory once the animation finishes.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// A key skips ahead once the banner is readable.
		if w.elapsed >= phase2End {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	emblemStyle := lipgloss.NewStyle().Foreground(theme.Primary)
	rendered := emblemStyle.Render(emblemArt)

	// Phase 2+: glow around the emblem
	if w.elapsed >= phase1End {
		frame := w.tickCount % len(glowFrames)
		glow := glowFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		g1 := accentStyle.Render(glow)
		g2 := secondaryStyle.Render(glow)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = g1 + "  " + lines[0] + "  " + g2
		}
		if len(lines) > 4 {
			lines[4] = g2 + "  " + lines[4] + "  " + g1
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline + hint
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Autoconhecimento e bem-estar")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("pressione qualquer tecla para continuar")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
