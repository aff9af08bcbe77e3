package quiz

import (
	"slices"

	"github.com/abhisek/levelup/internal/catalog"
)

// XPPerCorrectAnswer is the experience awarded for each correct answer.
const XPPerCorrectAnswer = 50

// InitialLives is the heart count shown in the header. Nothing consumes lives.
const InitialLives = 5

// State is the complete mutable session state. It is a plain value so that
// transitions can be expressed as functions from one State to the next.
type State struct {
	// UnlockedLevel is the highest level number the player may attempt.
	UnlockedLevel int

	// ExperiencePoints accumulates XPPerCorrectAnswer per correct answer.
	ExperiencePoints int

	// CompletedLevels counts level completions, replays included.
	CompletedLevels int

	// Attempt is the level in progress, nil when none.
	Attempt *LevelAttempt
}

// NewState returns the state every session starts from.
func NewState() State {
	return State{UnlockedLevel: 1}
}

// LevelAttempt is the transient progress through one level's questions.
type LevelAttempt struct {
	LevelNumber  int
	Questions    []catalog.Question
	CurrentIndex int
}

// Current returns the question being presented.
func (a *LevelAttempt) Current() catalog.Question {
	return a.Questions[a.CurrentIndex]
}

// IsLast reports whether the current question is the level's final one.
func (a *LevelAttempt) IsLast() bool {
	return a.CurrentIndex >= len(a.Questions)-1
}

func (a *LevelAttempt) clone() *LevelAttempt {
	if a == nil {
		return nil
	}
	c := *a
	c.Questions = slices.Clone(a.Questions)
	return &c
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Attempt = s.Attempt.clone()
	return s
}

// CompletionRatio returns the fraction of levels completed, in [0,1].
func (s State) CompletionRatio(totalLevels int) float64 {
	if totalLevels <= 0 {
		return 0
	}
	return float64(min(s.CompletedLevels, totalLevels)) / float64(totalLevels)
}

// Outcome classifies the result of an answer submission.
type Outcome int

const (
	OutcomeIncorrect     Outcome = iota // Wrong option; nothing changed
	OutcomeContinue                     // Correct; the next question is current
	OutcomeLevelComplete                // Correct on the last question; attempt cleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeContinue:
		return "continue"
	case OutcomeLevelComplete:
		return "level-complete"
	default:
		return "unknown"
	}
}

// AnswerResult is returned by a successful submission.
type AnswerResult struct {
	Outcome Outcome

	// Next is the newly current question. Set only for OutcomeContinue.
	Next *catalog.Question

	// CompletedLevel is the level just finished. Set only for OutcomeLevelComplete.
	CompletedLevel int
}
