package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/levelup/internal/ui/keys"
	"github.com/abhisek/levelup/internal/ui/theme"
)

// ChoiceMsg is emitted when the player picks an option. Option is the exact
// option text, untouched.
type ChoiceMsg struct {
	Index  int
	Option string
}

// MultiChoice is a multiple-choice selector. It reports choices and leaves
// grading to the caller.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	// Wrong marks options already answered incorrectly.
	Wrong map[int]bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Wrong:    map[int]bool{},
	}
}

// MarkWrong flags the option at i as a rejected answer.
func (m *MultiChoice) MarkWrong(i int) {
	if i >= 0 && i < len(m.Options) {
		m.Wrong[i] = true
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, keys.Select):
		return m, m.choose(m.Selected)
	case key.Matches(kmsg, keys.Number):
		if i := keys.Digit(kmsg.String()); i >= 0 && i < len(m.Options) {
			m.Selected = i
			return m, m.choose(i)
		}
	}
	return m, nil
}

func (m MultiChoice) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.Options) {
		return nil
	}
	choice := ChoiceMsg{Index: i, Option: m.Options[i]}
	return func() tea.Msg { return choice }
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case m.Wrong[i]:
			b.WriteString(theme.Incorrect.Faint(true).Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
