package store

import (
	"context"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable.Name,
		[]string{"session_id", "level", "question_index", "prompt", "correct_option", "chosen_option", "correct", "time_ms"},
		[]any{data.SessionID, data.Level, data.QuestionIndex, data.Prompt, data.CorrectOption, data.ChosenOption, data.Correct, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLevelEvent(ctx context.Context, data LevelEventData) error {
	err := r.insert(ctx, levelEventsTable.Name,
		[]string{"session_id", "level", "action"},
		[]any{data.SessionID, data.Level, data.Action},
	)
	if err != nil {
		return fmt.Errorf("save level event: %w", err)
	}
	return nil
}

func (r *eventRepo) LevelStats(ctx context.Context) ([]LevelStat, error) {
	byLevel := map[int]*LevelStat{}
	get := func(level int) *LevelStat {
		s, ok := byLevel[level]
		if !ok {
			s = &LevelStat{Level: level}
			byLevel[level] = s
		}
		return s
	}

	q, args := builder().
		Select("level", entsql.Count("*"), sumOrZero("correct")).
		From(entsql.Table(answerEventsTable.Name)).
		GroupBy("level").
		Query()
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	for rows.Next() {
		var level, answers, correct int
		if err := rows.Scan(&level, &answers, &correct); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		s := get(level)
		s.Answers, s.CorrectAnswers = answers, correct
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer stats: %w", err)
	}

	q, args = builder().
		Select("level", entsql.Count("*")).
		From(entsql.Table(levelEventsTable.Name)).
		Where(entsql.EQ("action", LevelCompleted)).
		GroupBy("level").
		Query()
	rows, err = r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion stats: %w", err)
	}
	for rows.Next() {
		var level, completions int
		if err := rows.Scan(&level, &completions); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan completion stats: %w", err)
		}
		get(level).Completions = completions
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion stats: %w", err)
	}

	out := make([]LevelStat, 0, len(byLevel))
	for _, s := range byLevel {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b LevelStat) int { return a.Level - b.Level })
	return out, nil
}
