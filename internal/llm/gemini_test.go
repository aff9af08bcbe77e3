package llm

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.0-flash",
		"gemini-pro":       "gemini-2.5-pro",
		"gemini-2.5-flash": "gemini-2.5-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiAliases); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":        "object",
		"description": "a hint",
		"properties": map[string]any{
			"hint":  map[string]any{"type": "string"},
			"level": map[string]any{"type": "integer"},
			"tone":  map[string]any{"type": "string", "enum": []any{"calm", "playful"}},
			"steps": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"hint"},
	})

	if s.Type != genai.TypeObject || s.Description != "a hint" {
		t.Fatalf("root = %+v", s)
	}
	if s.Properties["hint"].Type != genai.TypeString {
		t.Errorf("hint type = %v", s.Properties["hint"].Type)
	}
	if s.Properties["level"].Type != genai.TypeInteger {
		t.Errorf("level type = %v", s.Properties["level"].Type)
	}
	if got := s.Properties["tone"].Enum; len(got) != 2 || got[1] != "playful" {
		t.Errorf("tone enum = %v", got)
	}
	steps := s.Properties["steps"]
	if steps.Type != genai.TypeArray || steps.Items == nil || steps.Items.Type != genai.TypeString {
		t.Errorf("steps = %+v", steps)
	}
	if len(s.Required) != 1 || s.Required[0] != "hint" {
		t.Errorf("required = %v", s.Required)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
