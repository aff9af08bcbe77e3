package levelmap

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelup/internal/quiz"
	"github.com/abhisek/levelup/internal/router"
	"github.com/abhisek/levelup/internal/screen"
	"github.com/abhisek/levelup/internal/screens/history"
	"github.com/abhisek/levelup/internal/screens/placeholder"
	"github.com/abhisek/levelup/internal/screens/question"
	"github.com/abhisek/levelup/internal/ui/components"
	"github.com/abhisek/levelup/internal/ui/keys"
	"github.com/abhisek/levelup/internal/ui/layout"
	"github.com/abhisek/levelup/internal/ui/theme"
)

// LevelMapScreen is the home screen: every level with its lock state.
type LevelMapScreen struct {
	ctrl     *quiz.Controller
	deps     question.Deps
	selected int
	notice   string
}

var _ screen.Screen = (*LevelMapScreen)(nil)
var _ screen.KeyHintProvider = (*LevelMapScreen)(nil)

func New(ctrl *quiz.Controller, deps question.Deps) *LevelMapScreen {
	return &LevelMapScreen{ctrl: ctrl, deps: deps}
}

func (s *LevelMapScreen) Init() tea.Cmd { return nil }

func (s *LevelMapScreen) Title() string { return "Level Map" }

func (s *LevelMapScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Down, keys.Select, keys.History, keys.Quit)
}

// menu is rebuilt on every use so lock state always reflects the controller.
func (s *LevelMapScreen) menu() components.Menu {
	levels := s.ctrl.Catalog().Levels()
	items := make([]components.MenuItem, 0, len(levels))
	for _, l := range levels {
		label := fmt.Sprintf("Level %d", l.Number)
		if l.Title != "" {
			label += "  " + l.Title
		}
		item := components.MenuItem{Label: label, Action: s.startCmd(l.Number)}
		if !s.ctrl.IsUnlocked(l.Number) {
			item.Detail = "Locked"
			item.Dimmed = true
		}
		items = append(items, item)
	}
	m := components.NewMenu(items)
	m.Selected = s.selected
	return m
}

func (s *LevelMapScreen) startCmd(level int) func() tea.Cmd {
	return func() tea.Cmd { return s.start(level) }
}

// start begins level on the controller and opens its first question.
func (s *LevelMapScreen) start(level int) tea.Cmd {
	first, err := s.ctrl.StartLevel(level)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	return router.Push(question.New(s.ctrl, s.deps, level, first))
}

func (s *LevelMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.Quit):
		return s, tea.Quit
	case key.Matches(kmsg, keys.History):
		if s.deps.Repo == nil {
			return s, router.Push(placeholder.New("History", "History is unavailable without a database."))
		}
		return s, router.Push(history.New(s.deps.Repo))
	}

	m, cmd := s.menu().Update(kmsg)
	if m.Selected != s.selected {
		s.notice = ""
	}
	s.selected = m.Selected
	return s, cmd
}

func (s *LevelMapScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose a level"))
	b.WriteString("\n\n")
	b.WriteString(s.menu().View())
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Unlocked %d of %d", min(s.ctrl.UnlockedLevel(), s.ctrl.TotalLevels()), s.ctrl.TotalLevels())))
	if s.notice != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.notice))
	}
	return layout.Center(b.String(), width, height)
}
