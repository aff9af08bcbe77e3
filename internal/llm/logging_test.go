package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/levelup/internal/store"
)

// recordingRepo captures LLM events and ignores everything else.
type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"hint":"h"}`),
		Usage:   usage(30, 7),
	})
	repo := &recordingRepo{}
	core, logs := observer.New(zap.InfoLevel)
	p := WithLogging(mock, "mock", repo, zap.New(core))

	ctx := WithPurpose(context.Background(), PurposeHint)
	if _, err := p.Generate(ctx, Ask("sys", "question?", hintTestSchema, 10)); err != nil {
		t.Fatal(err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != PurposeHint {
		t.Errorf("event = %+v", e)
	}
	if !e.Success || e.InputTokens != 30 || e.OutputTokens != 7 {
		t.Errorf("event = %+v", e)
	}
	if e.ResponseBody != `{"hint":"h"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	for _, want := range []string{"[system]\nsys", "[user]\nquestion?", "[schema: test-hint]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}

	if logs.FilterMessage("llm request").Len() != 1 {
		t.Errorf("expected one info log entry, got %v", logs.All())
	}
}

func TestLogging_RecordsFailureAndKeepsError(t *testing.T) {
	boom := &ErrRateLimit{Err: errors.New("429")}
	mock := NewMockProvider(MockResponse{Err: boom})
	repo := &recordingRepo{err: errors.New("disk full")}
	core, logs := observer.New(zap.WarnLevel)
	p := WithLogging(mock, "mock", repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the provider error", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Errorf("events = %+v", repo.events)
	}
	if repo.events[0].Purpose != PurposeUnknown {
		t.Errorf("purpose = %q, want %q", repo.events[0].Purpose, PurposeUnknown)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Error("expected failure log entry")
	}
	if logs.FilterMessage("record llm request event").Len() != 1 {
		t.Error("expected repo failure to be logged")
	}
}

func TestLogging_NilSinks(t *testing.T) {
	p := WithLogging(NewMockProvider(okResponse), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
