package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	events "github.com/abhisek/levelup/ent/schema"
)

var (
	sessionEventsTable    = mustTable("session_events", "sessionevent", events.SessionEvent{})
	answerEventsTable     = mustTable("answer_events", "answerevent", events.AnswerEvent{})
	levelEventsTable      = mustTable("level_events", "levelevent", events.LevelEvent{})
	llmRequestEventsTable = mustTable("llm_request_events", "llmrequestevent", events.LLMRequestEvent{})

	// Tables lists every event table managed by the store.
	Tables = []*schema.Table{
		sessionEventsTable,
		answerEventsTable,
		levelEventsTable,
		llmRequestEventsTable,
	}
)

// tableFor converts an ent schema into the table the migrator creates. Mixin
// fields come before the schema's own fields, after the auto-increment id.
func tableFor(name, indexPrefix string, s ent.Interface) (*schema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{Name: name, Columns: []*schema.Column{id}, PrimaryKey: []*schema.Column{id}}
	byName := map[string]*schema.Column{id.Name: id}

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Size:     int64(d.Size),
		}
		switch v := d.Default.(type) {
		case int, int64, bool, string:
			col.Default = v
		}
		t.Columns = append(t.Columns, col)
		byName[col.Name] = col
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		idx := &schema.Index{
			Name:   indexPrefix + "_" + strings.Join(d.Fields, "_"),
			Unique: d.Unique,
		}
		for _, fname := range d.Fields {
			col, ok := byName[fname]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, fname)
			}
			idx.Columns = append(idx.Columns, col)
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t, nil
}

func mustTable(name, indexPrefix string, s ent.Interface) *schema.Table {
	t, err := tableFor(name, indexPrefix, s)
	if err != nil {
		panic(err)
	}
	return t
}

// migrate creates missing tables, columns and indexes. It never drops anything.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
