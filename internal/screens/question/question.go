package question

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/hints"
	"github.com/abhisek/levelup/internal/quiz"
	"github.com/abhisek/levelup/internal/router"
	"github.com/abhisek/levelup/internal/screen"
	"github.com/abhisek/levelup/internal/screens/complete"
	"github.com/abhisek/levelup/internal/store"
	"github.com/abhisek/levelup/internal/ui/components"
	"github.com/abhisek/levelup/internal/ui/keys"
	"github.com/abhisek/levelup/internal/ui/layout"
)

const (
	hintPollInterval = 250 * time.Millisecond
	hintMaxPolls     = 100

	wrongAnswerText = "Wrong answer. Try again!"
)

// Deps are the collaborators of the question screen. Repo and Hints may be nil.
type Deps struct {
	Repo      store.EventRepo
	Hints     *hints.Service
	Log       *zap.Logger
	SessionID string
}

type feedback int

const (
	feedbackNone feedback = iota
	feedbackCorrect
	feedbackWrong
)

// QuestionScreen presents the questions of one level attempt.
type QuestionScreen struct {
	ctrl  *quiz.Controller
	deps  Deps
	level int

	question catalog.Question
	choice   components.MultiChoice
	shownAt  time.Time

	feedback  feedback
	hint      string
	hintPolls int
	errMsg    string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// New creates the screen for a level that has just been started on ctrl.
// first is the question StartLevel returned.
func New(ctrl *quiz.Controller, deps Deps, level int, first catalog.Question) *QuestionScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	s := &QuestionScreen{ctrl: ctrl, deps: deps, level: level}
	s.show(first)
	return s
}

func (s *QuestionScreen) show(q catalog.Question) {
	s.question = q
	s.choice = components.NewMultiChoice(q.Prompt, q.Options)
	s.shownAt = time.Now()
	s.hint = ""
	s.hintPolls = 0
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.persistLevel(store.LevelStarted)
}

func (s *QuestionScreen) Title() string {
	if l, ok := s.ctrl.Catalog().Level(s.level); ok && l.Title != "" {
		return fmt.Sprintf("Level %d: %s", s.level, l.Title)
	}
	return fmt.Sprintf("Level %d", s.level)
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Number, keys.Up, keys.Down, keys.Select, keys.Back)
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMsg:
		return s.submit(msg)

	case hintTickMsg:
		return s.pollHint()

	case persistedMsg:
		if msg.Err != nil {
			s.deps.Log.Warn("history write failed", zap.String("event", msg.What), zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, keys.Back) {
			s.ctrl.Abandon()
			return s, tea.Batch(s.persistLevel(store.LevelAbandoned), router.Pop)
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestionScreen) submit(c components.ChoiceMsg) (screen.Screen, tea.Cmd) {
	attempt := s.ctrl.Attempt()
	index := 0
	if attempt != nil {
		index = attempt.CurrentIndex
	}
	elapsed := time.Since(s.shownAt)

	res, err := s.ctrl.SubmitAnswer(c.Option)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveAttempt) {
			return s, router.Pop
		}
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""

	answer := s.persistAnswer(index, c.Option, res.Outcome != quiz.OutcomeIncorrect, elapsed)

	switch res.Outcome {
	case quiz.OutcomeIncorrect:
		s.feedback = feedbackWrong
		s.choice.MarkWrong(c.Index)
		return s, tea.Batch(answer, s.requestHint(c.Option))

	case quiz.OutcomeContinue:
		s.feedback = feedbackCorrect
		s.show(*res.Next)
		return s, answer

	case quiz.OutcomeLevelComplete:
		done := complete.New(complete.Result{
			Level:            res.CompletedLevel,
			ExperiencePoints: s.ctrl.ExperiencePoints(),
			CompletionRatio:  s.ctrl.CompletionRatio(),
			NextUnlocked:     s.ctrl.IsUnlocked(res.CompletedLevel + 1),
		})
		// The completion event must be sequenced after the answer that caused it.
		writes := tea.Sequence(answer, s.persistLevel(store.LevelCompleted))
		return s, tea.Batch(writes, router.Replace(done))
	}
	return s, answer
}

func (s *QuestionScreen) requestHint(chosen string) tea.Cmd {
	if s.deps.Hints == nil {
		return nil
	}
	s.deps.Hints.RequestHint(context.Background(), hints.Input{
		Level:    s.level,
		Question: s.question,
		Chosen:   chosen,
	})
	s.hintPolls = 0
	return hintTick()
}

func (s *QuestionScreen) pollHint() (screen.Screen, tea.Cmd) {
	if s.deps.Hints == nil {
		return s, nil
	}
	if h, ok := s.deps.Hints.ConsumeHint(); ok {
		if h.Prompt == s.question.Prompt {
			s.hint = h.Text
		}
		return s, nil
	}
	s.hintPolls++
	if s.hintPolls >= hintMaxPolls {
		return s, nil
	}
	return s, hintTick()
}

func hintTick() tea.Cmd {
	return tea.Tick(hintPollInterval, func(t time.Time) tea.Msg {
		return hintTickMsg(t)
	})
}

func (s *QuestionScreen) persistAnswer(index int, chosen string, correct bool, elapsed time.Duration) tea.Cmd {
	if s.deps.Repo == nil {
		return nil
	}
	data := store.AnswerEventData{
		SessionID:     s.deps.SessionID,
		Level:         s.level,
		QuestionIndex: index,
		Prompt:        s.question.Prompt,
		CorrectOption: s.question.Correct,
		ChosenOption:  chosen,
		Correct:       correct,
		TimeMs:        elapsed.Milliseconds(),
	}
	repo := s.deps.Repo
	return func() tea.Msg {
		return persistedMsg{What: "answer", Err: repo.AppendAnswerEvent(context.Background(), data)}
	}
}

func (s *QuestionScreen) persistLevel(action string) tea.Cmd {
	if s.deps.Repo == nil {
		return nil
	}
	data := store.LevelEventData{SessionID: s.deps.SessionID, Level: s.level, Action: action}
	repo := s.deps.Repo
	return func() tea.Msg {
		return persistedMsg{What: "level " + action, Err: repo.AppendLevelEvent(context.Background(), data)}
	}
}
