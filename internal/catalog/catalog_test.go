package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Shape(t *testing.T) {
	c := Default()
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.QuestionCount() != 6 {
		t.Errorf("QuestionCount = %d, want 6", c.QuestionCount())
	}
	for _, l := range c.Levels() {
		if len(l.Questions) != 2 {
			t.Errorf("level %d has %d questions, want 2", l.Number, len(l.Questions))
		}
		for _, q := range l.Questions {
			if q.CorrectIndex() < 0 {
				t.Errorf("level %d question %q: correct answer missing from options", l.Number, q.Prompt)
			}
		}
	}
}

func TestDefault_FirstQuestion(t *testing.T) {
	l, ok := Default().Level(1)
	if !ok {
		t.Fatal("level 1 not found")
	}
	if got := l.Questions[0].Prompt; got != "What does HTML stand for?" {
		t.Errorf("prompt = %q", got)
	}
}

func TestLevel_Missing(t *testing.T) {
	if _, ok := Default().Level(99); ok {
		t.Error("expected level 99 to be absent")
	}
	if _, ok := Default().Level(0); ok {
		t.Error("expected level 0 to be absent")
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := Default()
	l, _ := c.Level(1)
	l.Questions[0].Prompt = "mutated"
	l.Questions[0].Options[0] = "mutated"

	again, _ := c.Level(1)
	if again.Questions[0].Prompt == "mutated" || again.Questions[0].Options[0] == "mutated" {
		t.Fatal("catalog was mutated through a returned level")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	levels := []Level{{
		Number:    1,
		Questions: []Question{{Prompt: "p", Options: []string{"a", "b"}, Correct: "a"}},
	}}
	c, err := New(levels)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	levels[0].Questions[0].Correct = "b"

	l, _ := c.Level(1)
	if l.Questions[0].Correct != "a" {
		t.Error("catalog shares memory with caller input")
	}
}

func TestQuestion_IsCorrect_Exact(t *testing.T) {
	q := Question{Options: []string{"CSS", "Java"}, Correct: "CSS"}
	tests := []struct {
		option string
		want   bool
	}{
		{"CSS", true},
		{"css", false},
		{" CSS", false},
		{"Java", false},
	}
	for _, tt := range tests {
		if got := q.IsCorrect(tt.option); got != tt.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tt.option, got, tt.want)
		}
	}
}

func TestValidateLevels(t *testing.T) {
	good := Question{Prompt: "p", Options: []string{"a", "b"}, Correct: "a"}
	tests := []struct {
		name    string
		levels  []Level
		wantErr string
	}{
		{"empty", nil, "no levels"},
		{"gap", []Level{{Number: 1, Questions: []Question{good}}, {Number: 3, Questions: []Question{good}}}, "want 2"},
		{"starts at 2", []Level{{Number: 2, Questions: []Question{good}}}, "want 1"},
		{"no questions", []Level{{Number: 1}}, "no questions"},
		{"one option", []Level{{Number: 1, Questions: []Question{{Prompt: "p", Options: []string{"a"}, Correct: "a"}}}}, "at least 2"},
		{"answer missing", []Level{{Number: 1, Questions: []Question{{Prompt: "p", Options: []string{"a", "b"}, Correct: "c"}}}}, "not one of the options"},
		{"blank prompt", []Level{{Number: 1, Questions: []Question{{Prompt: " ", Options: []string{"a", "b"}, Correct: "a"}}}}, "empty prompt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLevels(tt.levels)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLevels_DuplicateOptionsAllowed(t *testing.T) {
	levels := []Level{{Number: 1, Questions: []Question{{Prompt: "p", Options: []string{"a", "a"}, Correct: "a"}}}}
	if err := validateLevels(levels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

const sampleJSON = `{
	"levels": [
		{"level": 1, "title": "Go", "questions": [
			{"question": "Who created Go?", "options": ["Google", "Mozilla"], "answer": "Google"}
		]},
		{"level": 2, "questions": [
			{"question": "Go keyword for goroutines?", "options": ["go", "async", "spawn"], "answer": "go"},
			{"question": "Zero value of int?", "options": ["0", "nil"], "answer": "0"}
		]}
	]
}`

func TestParse_Valid(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	l, _ := c.Level(2)
	if len(l.Questions) != 2 || l.Questions[1].Correct != "0" {
		t.Errorf("unexpected level 2: %+v", l)
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{levels`},
		{"missing levels", `{}`},
		{"unknown field", `{"levels":[{"level":1,"questions":[{"question":"q","options":["a","b"],"answer":"a","extra":1}]}]}`},
		{"one option", `{"levels":[{"level":1,"questions":[{"question":"q","options":["a"],"answer":"a"}]}]}`},
		{"string level", `{"levels":[{"level":"1","questions":[{"question":"q","options":["a","b"],"answer":"a"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParse_StructuralError(t *testing.T) {
	input := `{"levels":[{"level":1,"questions":[{"question":"q","options":["a","b"],"answer":"c"}]}]}`
	_, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for answer outside options")
	}
	if !strings.Contains(err.Error(), "not one of the options") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFile_And_Resolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	def, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	if def != Default() {
		t.Error("empty path should resolve to the built-in catalog")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
