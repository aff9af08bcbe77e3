package quiz

import (
	"errors"
	"fmt"
)

// ErrNoActiveAttempt is returned when an answer is submitted with no level in progress.
var ErrNoActiveAttempt = errors.New("no level attempt in progress")

// LevelLockedError reports an attempt to start a level beyond the unlocked frontier.
type LevelLockedError struct {
	Level    int
	Unlocked int
}

func (e *LevelLockedError) Error() string {
	return fmt.Sprintf("level %d is locked (unlocked up to %d)", e.Level, e.Unlocked)
}

// LevelNotFoundError reports a level number that is not in the catalog.
type LevelNotFoundError struct {
	Level int
}

func (e *LevelNotFoundError) Error() string {
	return fmt.Sprintf("level %d not found in catalog", e.Level)
}

// IsLevelLocked reports whether err is or wraps a *LevelLockedError.
func IsLevelLocked(err error) bool {
	var e *LevelLockedError
	return errors.As(err, &e)
}

// IsLevelNotFound reports whether err is or wraps a *LevelNotFoundError.
func IsLevelNotFound(err error) bool {
	var e *LevelNotFoundError
	return errors.As(err, &e)
}
