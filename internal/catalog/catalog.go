package catalog

import (
	"fmt"
	"slices"
)

// Question is a single multiple-choice question.
type Question struct {
	Prompt  string
	Options []string
	Correct string
}

// IsCorrect reports whether option exactly matches the correct answer.
// No trimming or case folding is applied.
func (q Question) IsCorrect(option string) bool {
	return option == q.Correct
}

// CorrectIndex returns the index of the first option equal to Correct, or -1.
func (q Question) CorrectIndex() int {
	return slices.Index(q.Options, q.Correct)
}

func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// Level is an ordered set of questions unlocked as a unit.
type Level struct {
	Number    int
	Title     string
	Questions []Question
}

func (l Level) clone() Level {
	qs := make([]Question, len(l.Questions))
	for i, q := range l.Questions {
		qs[i] = q.clone()
	}
	l.Questions = qs
	return l
}

// Catalog is the immutable set of levels. The zero value is empty and unusable;
// build one with New or Default.
type Catalog struct {
	levels   []Level
	byNumber map[int]int // level number -> index into levels
}

// New validates levels and builds a Catalog from a private copy of them.
func New(levels []Level) (*Catalog, error) {
	if err := validateLevels(levels); err != nil {
		return nil, err
	}

	c := &Catalog{
		levels:   make([]Level, len(levels)),
		byNumber: make(map[int]int, len(levels)),
	}
	for i, l := range levels {
		c.levels[i] = l.clone()
		c.byNumber[l.Number] = i
	}
	return c, nil
}

// MustNew is like New but panics on invalid input. Intended for static seed data.
func MustNew(levels []Level) *Catalog {
	c, err := New(levels)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns a copy of the level with the given number.
func (c *Catalog) Level(number int) (Level, bool) {
	i, ok := c.byNumber[number]
	if !ok {
		return Level{}, false
	}
	return c.levels[i].clone(), true
}

// Levels returns copies of all levels in order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	for i, l := range c.levels {
		out[i] = l.clone()
	}
	return out
}

// QuestionCount returns the total number of questions across all levels.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, l := range c.levels {
		n += len(l.Questions)
	}
	return n
}
