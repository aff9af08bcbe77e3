package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one submitted option.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("level").
			Comment("Level number the question belongs to"),
		field.Int("question_index").
			Comment("Zero-based position within the level"),
		field.String("prompt").
			MaxLen(2048).
			Comment("The question shown"),
		field.String("correct_option").
			Comment("The catalog's correct option"),
		field.String("chosen_option").
			Comment("What the player picked"),
		field.Bool("correct").
			Comment("Whether the choice matched exactly"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("level"),
	}
}
