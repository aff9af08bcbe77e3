package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records the start and end of one game process.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.Int("experience_points").
			Default(0).
			Comment("XP at the time of the event"),
		field.Int("unlocked_level").
			Default(1).
			Comment("Highest playable level"),
		field.Int("completed_levels").
			Default(0).
			Comment("Level completions, replays included"),
		field.Int("duration_secs").
			Default(0).
			Comment("Session length (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
