package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LevelEvent records a level being started, completed or abandoned.
type LevelEvent struct {
	ent.Schema
}

func (LevelEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LevelEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.Int("level"),
		field.String("action").
			NotEmpty().
			Comment("started, completed or abandoned"),
	}
}

func (LevelEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("level"),
	}
}
