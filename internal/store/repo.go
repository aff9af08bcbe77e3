package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before
}

// Session actions.
const (
	SessionStarted = "start"
	SessionEnded   = "end"
)

// Level actions.
const (
	LevelStarted   = "started"
	LevelCompleted = "completed"
	LevelAbandoned = "abandoned"
)

// SessionEventData is a session start or end marker with the totals reached.
type SessionEventData struct {
	SessionID        string
	Action           string
	ExperiencePoints int
	UnlockedLevel    int
	CompletedLevels  int
	DurationSecs     int
}

// AnswerEventData records one submitted answer.
type AnswerEventData struct {
	SessionID     string
	Level         int
	QuestionIndex int
	Prompt        string
	CorrectOption string
	ChosenOption  string
	Correct       bool
	TimeMs        int64
}

// LevelEventData records a level being started, completed or abandoned.
type LevelEventData struct {
	SessionID string
	Level     int
	Action    string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionSummary is one finished session as shown by the history views.
type SessionSummary struct {
	SessionID        string
	StartedAt        time.Time
	EndedAt          time.Time
	ExperiencePoints int
	UnlockedLevel    int
	CompletedLevels  int
	DurationSecs     int
	Answers          int
	CorrectAnswers   int
}

// LevelStat aggregates answer and completion counts for one level.
type LevelStat struct {
	Level          int
	Answers        int
	CorrectAnswers int
	Completions    int
}

// Accuracy returns the fraction of correct answers, 0 when none were given.
func (s LevelStat) Accuracy() float64 {
	if s.Answers == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.Answers)
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to gameplay and LLM events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLevelEvent(ctx context.Context, data LevelEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error)

	// LevelStats returns per-level aggregates ordered by level.
	LevelStats(ctx context.Context) ([]LevelStat, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
