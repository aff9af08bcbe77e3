package complete

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelup/internal/router"
	"github.com/abhisek/levelup/internal/screen"
	"github.com/abhisek/levelup/internal/ui/components"
	"github.com/abhisek/levelup/internal/ui/keys"
	"github.com/abhisek/levelup/internal/ui/layout"
	"github.com/abhisek/levelup/internal/ui/theme"
)

// Result is what the player achieved by finishing a level.
type Result struct {
	Level            int
	ExperiencePoints int
	CompletionRatio  float64
	NextUnlocked     bool
}

// CompleteScreen congratulates the player after the last question of a level.
type CompleteScreen struct {
	result Result
	button components.Button
}

var _ screen.Screen = (*CompleteScreen)(nil)
var _ screen.KeyHintProvider = (*CompleteScreen)(nil)

func New(r Result) *CompleteScreen {
	return &CompleteScreen{
		result: r,
		button: components.NewButton("Back to map", true, func() tea.Cmd { return router.PopToRoot }),
	}
}

func (s *CompleteScreen) Init() tea.Cmd { return nil }

func (s *CompleteScreen) Title() string { return "Level Complete" }

func (s *CompleteScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Select, keys.Back)
}

func (s *CompleteScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if key.Matches(kmsg, keys.Back) {
		return s, router.PopToRoot
	}
	var cmd tea.Cmd
	s.button, cmd = s.button.Update(kmsg)
	return s, cmd
}

func (s *CompleteScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Level %d complete!", s.result.Level)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Experience: %d XP", s.result.ExperiencePoints)))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("Completion", s.result.CompletionRatio, true, 40).View())
	b.WriteString("\n\n")
	if s.result.NextUnlocked {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Level %d unlocked", s.result.Level+1)))
	} else {
		b.WriteString(theme.Correct.Render("All levels cleared"))
	}
	b.WriteString("\n\n")
	b.WriteString(s.button.View())

	return layout.Center(theme.Card.Render(b.String()), width, height)
}
