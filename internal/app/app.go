package app

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/hints"
	"github.com/abhisek/levelup/internal/quiz"
	"github.com/abhisek/levelup/internal/router"
	"github.com/abhisek/levelup/internal/screen"
	"github.com/abhisek/levelup/internal/screens/levelmap"
	"github.com/abhisek/levelup/internal/screens/question"
	"github.com/abhisek/levelup/internal/screens/welcome"
	"github.com/abhisek/levelup/internal/store"
	"github.com/abhisek/levelup/internal/ui/keys"
	"github.com/abhisek/levelup/internal/ui/layout"
)

// Options holds the dependencies for the game. Only Catalog is required.
type Options struct {
	Catalog *catalog.Catalog
	Repo    store.EventRepo
	Hints   *hints.Service
	Log     *zap.Logger

	// SkipIntro opens the level map directly instead of the splash screen.
	SkipIntro bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *quiz.Controller
	router *router.Router
	width  int
	height int
}

func newAppModel(ctrl *quiz.Controller, root screen.Screen) AppModel {
	return AppModel{
		ctrl:   ctrl,
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) stats() layout.Stats {
	return layout.Stats{
		Lives:            quiz.InitialLives,
		ExperiencePoints: m.ctrl.ExperiencePoints(),
		CompletionRatio:  m.ctrl.CompletionRatio(),
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame, or nothing until the terminal size is known.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.stats(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footerHints = append(footerHints, keys.Hints(keys.ForceQuit)...)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run plays one session until the player quits. Session start and end are
// recorded in the history store when one is configured.
func Run(ctx context.Context, opts Options) error {
	if opts.Catalog == nil {
		return fmt.Errorf("app: catalog is required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	sessionID := uuid.New().String()
	log = log.With(zap.String("session", sessionID))
	ctrl := quiz.NewController(opts.Catalog, quiz.WithLogger(log))

	deps := question.Deps{Repo: opts.Repo, Hints: opts.Hints, Log: log, SessionID: sessionID}
	started := time.Now()
	recordSession(ctx, opts.Repo, log, store.SessionEventData{
		SessionID:     sessionID,
		Action:        store.SessionStarted,
		UnlockedLevel: ctrl.UnlockedLevel(),
	})
	log.Info("session started", zap.Int("levels", opts.Catalog.Len()), zap.Bool("hints", opts.Hints != nil))

	var root screen.Screen = levelmap.New(ctrl, deps)
	if !opts.SkipIntro {
		root = welcome.New(func() screen.Screen { return levelmap.New(ctrl, deps) })
	}

	p := tea.NewProgram(newAppModel(ctrl, root), tea.WithContext(ctx))
	_, runErr := p.Run()

	final := ctrl.Snapshot()
	recordSession(context.WithoutCancel(ctx), opts.Repo, log, store.SessionEventData{
		SessionID:        sessionID,
		Action:           store.SessionEnded,
		ExperiencePoints: final.ExperiencePoints,
		UnlockedLevel:    final.UnlockedLevel,
		CompletedLevels:  final.CompletedLevels,
		DurationSecs:     int(time.Since(started).Seconds()),
	})
	log.Info("session ended",
		zap.Int("xp", final.ExperiencePoints),
		zap.Int("completed", final.CompletedLevels),
		zap.Error(runErr))

	if runErr != nil {
		return fmt.Errorf("run program: %w", runErr)
	}
	return nil
}

func recordSession(ctx context.Context, repo store.EventRepo, log *zap.Logger, data store.SessionEventData) {
	if repo == nil {
		return
	}
	if err := repo.AppendSessionEvent(ctx, data); err != nil {
		log.Warn("history write failed", zap.String("event", "session "+data.Action), zap.Error(err))
	}
}
