package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable.Name,
		[]string{"session_id", "action", "experience_points", "unlocked_level", "completed_levels", "duration_secs"},
		[]any{data.SessionID, data.Action, data.ExperiencePoints, data.UnlockedLevel, data.CompletedLevels, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error) {
	sel := builder().
		Select("session_id", "timestamp", "experience_points", "unlocked_level", "completed_levels", "duration_secs").
		From(entsql.Table(sessionEventsTable.Name)).
		Where(entsql.EQ("action", SessionEnded)).
		OrderBy(entsql.Desc("sequence"))
	q, args := paginate(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.SessionID, &s.EndedAt, &s.ExperiencePoints, &s.UnlockedLevel, &s.CompletedLevels, &s.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	rows.Close()

	for i := range out {
		if err := r.fillSession(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// fillSession adds the start time and answer counts to an ended session.
func (r *eventRepo) fillSession(ctx context.Context, s *SessionSummary) error {
	q, args := builder().
		Select("timestamp").
		From(entsql.Table(sessionEventsTable.Name)).
		Where(entsql.And(
			entsql.EQ("session_id", s.SessionID),
			entsql.EQ("action", SessionStarted),
		)).
		OrderBy("sequence").
		Limit(1).
		Query()
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&s.StartedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.StartedAt = s.EndedAt.Add(-time.Duration(s.DurationSecs) * time.Second)
	case err != nil:
		return fmt.Errorf("query session start: %w", err)
	}

	q, args = builder().
		Select(entsql.Count("*"), sumOrZero("correct")).
		From(entsql.Table(answerEventsTable.Name)).
		Where(entsql.EQ("session_id", s.SessionID)).
		Query()
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&s.Answers, &s.CorrectAnswers); err != nil {
		return fmt.Errorf("count session answers: %w", err)
	}
	return nil
}
