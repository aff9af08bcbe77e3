package quiz

import (
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/catalog"
)

// Controller owns one session's State and mediates every transition.
// It is not safe for concurrent use; callers issue one transition at a time.
type Controller struct {
	catalog *catalog.Catalog
	state   State
	log     *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController creates a Controller in the initial session state.
func NewController(cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog: cat,
		state:   NewState(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the catalog the controller reads from.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Controller) UnlockedLevel() int {
	return c.state.UnlockedLevel
}

func (c *Controller) ExperiencePoints() int {
	return c.state.ExperiencePoints
}

// CompletionRatio returns completed levels over total levels, capped at 1.
func (c *Controller) CompletionRatio() float64 {
	return c.state.CompletionRatio(c.catalog.Len())
}

// TotalLevels returns the number of levels in the catalog.
func (c *Controller) TotalLevels() int {
	return c.catalog.Len()
}

// IsUnlocked reports whether level may be started right now.
func (c *Controller) IsUnlocked(level int) bool {
	_, ok := c.catalog.Level(level)
	return ok && level <= c.state.UnlockedLevel
}

// CurrentQuestion returns the question being presented, if a level is in progress.
func (c *Controller) CurrentQuestion() (catalog.Question, bool) {
	if c.state.Attempt == nil {
		return catalog.Question{}, false
	}
	return c.state.Attempt.Current(), true
}

// Attempt returns a copy of the active attempt, or nil.
func (c *Controller) Attempt() *LevelAttempt {
	return c.state.Attempt.clone()
}

// Snapshot returns a deep copy of the current state for rendering.
func (c *Controller) Snapshot() State {
	return c.state.Clone()
}

// StartLevel begins the given level and returns its first question.
func (c *Controller) StartLevel(level int) (catalog.Question, error) {
	next, q, err := Start(c.state, c.catalog, level)
	if err != nil {
		c.log.Debug("start level rejected", zap.Int("level_number", level), zap.Error(err))
		return catalog.Question{}, err
	}

	if c.state.Attempt != nil {
		c.log.Debug("discarding attempt",
			zap.Int("level_number", c.state.Attempt.LevelNumber),
			zap.Int("index", c.state.Attempt.CurrentIndex))
	}
	c.state = next
	c.log.Debug("level started", zap.Int("level_number", level), zap.Int("questions", len(next.Attempt.Questions)))
	return q, nil
}

// SubmitAnswer checks option against the current question.
func (c *Controller) SubmitAnswer(option string) (AnswerResult, error) {
	next, res, err := Submit(c.state, option)
	if err != nil {
		c.log.Debug("submit rejected", zap.Error(err))
		return AnswerResult{}, err
	}
	c.state = next

	c.log.Debug("answer submitted",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("xp", next.ExperiencePoints),
		zap.Int("unlocked", next.UnlockedLevel))
	return res, nil
}

// Abandon discards the active attempt without resolving it.
func (c *Controller) Abandon() {
	if c.state.Attempt == nil {
		return
	}
	c.log.Debug("attempt abandoned", zap.Int("level_number", c.state.Attempt.LevelNumber))
	c.state = Abandon(c.state)
}
