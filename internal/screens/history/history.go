package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/levelup/internal/router"
	"github.com/abhisek/levelup/internal/screen"
	"github.com/abhisek/levelup/internal/store"
	"github.com/abhisek/levelup/internal/ui/keys"
	"github.com/abhisek/levelup/internal/ui/layout"
	"github.com/abhisek/levelup/internal/ui/theme"
)

const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Levels   []store.LevelStat
	Err      error
}

// HistoryScreen lists past sessions and per-level accuracy.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummary
	levels    []store.LevelStat
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		levels, err := repo.LevelStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: sessions, Levels: levels}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.levels = msg.Levels
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return s, router.Pop
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Select):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }

	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error).Render("\n\nError: " + s.errMsg))
	}
	if !s.loaded {
		return center(theme.Hint.Render("\n\n  Loading history..."))
	}
	if len(s.sessions) == 0 {
		return center(theme.Hint.Render("\n\n  No sessions yet. Go play a level!"))
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s  %s  %d XP  %d levels  %.0f%% accuracy",
			prefix, sess.EndedAt.Format("Jan 02, 2006 15:04"), duration(sess.DurationSecs),
			sess.ExperiencePoints, sess.CompletedLevels, accuracy(sess)*100)
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    reached level %d, %d of %d answers correct",
				sess.UnlockedLevel, sess.CorrectAnswers, sess.Answers)
			b.WriteString(center(theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	if len(s.levels) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.Subtitle.Render("By level")))
		b.WriteString("\n")
		for _, l := range s.levels {
			line := fmt.Sprintf("Level %d  %d answers  %.0f%% correct  %d completions",
				l.Level, l.Answers, l.Accuracy()*100, l.Completions)
			b.WriteString(center(theme.Body.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func duration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func accuracy(s store.SessionSummary) float64 {
	if s.Answers == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.Answers)
}
