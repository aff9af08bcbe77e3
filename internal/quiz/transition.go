package quiz

import (
	"slices"

	"github.com/abhisek/levelup/internal/catalog"
)

// Start begins an attempt at the given level. On success the returned state
// holds a fresh attempt at index 0, replacing any previous one. On error the
// input state is returned unchanged.
func Start(s State, cat *catalog.Catalog, level int) (State, catalog.Question, error) {
	def, ok := cat.Level(level)
	if !ok {
		return s, catalog.Question{}, &LevelNotFoundError{Level: level}
	}
	if level > s.UnlockedLevel {
		return s, catalog.Question{}, &LevelLockedError{Level: level, Unlocked: s.UnlockedLevel}
	}

	next := s.Clone()
	next.Attempt = &LevelAttempt{
		LevelNumber: level,
		Questions:   slices.Clone(def.Questions),
	}
	return next, next.Attempt.Current(), nil
}

// Submit checks option against the current question and advances the attempt.
// A wrong option is not an error: it yields OutcomeIncorrect and the state is
// returned unchanged.
func Submit(s State, option string) (State, AnswerResult, error) {
	if s.Attempt == nil {
		return s, AnswerResult{}, ErrNoActiveAttempt
	}

	if !s.Attempt.Current().IsCorrect(option) {
		return s, AnswerResult{Outcome: OutcomeIncorrect}, nil
	}

	next := s.Clone()
	next.ExperiencePoints += XPPerCorrectAnswer

	if !next.Attempt.IsLast() {
		next.Attempt.CurrentIndex++
		q := next.Attempt.Current()
		return next, AnswerResult{Outcome: OutcomeContinue, Next: &q}, nil
	}

	// The frontier moves on every completion, replays included.
	completed := next.Attempt.LevelNumber
	next.CompletedLevels++
	next.UnlockedLevel++
	next.Attempt = nil
	return next, AnswerResult{Outcome: OutcomeLevelComplete, CompletedLevel: completed}, nil
}

// Abandon drops the active attempt, if any.
func Abandon(s State) State {
	next := s.Clone()
	next.Attempt = nil
	return next
}
