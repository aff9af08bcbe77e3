// Package keys holds the key bindings shared by screens and components.
package keys

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/levelup/internal/ui/layout"
)

var (
	Up        = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up"))
	Down      = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down"))
	Select    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "select"))
	Back      = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back"))
	Quit      = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	ForceQuit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "quit"))
	History   = key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history"))
	Number    = key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "choose"))
)

// Digit returns the zero-based option index for a number key, or -1.
func Digit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// Hints converts bindings to footer hints using their help text.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
