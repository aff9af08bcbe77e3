package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileSchema is the JSON Schema for catalog files.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"levels": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"level": map[string]any{"type": "integer", "minimum": 1},
					"title": map[string]any{"type": "string"},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"question": map[string]any{"type": "string", "minLength": 1},
								"options": map[string]any{
									"type":     "array",
									"minItems": MinOptions,
									"items":    map[string]any{"type": "string"},
								},
								"answer": map[string]any{"type": "string"},
							},
							"required":             []any{"question", "options", "answer"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"level", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"levels"},
	"additionalProperties": false,
}

const fileSchemaURL = "schema://levelup/catalog.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledFileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go ints and typed slices.
		defBytes, err := json.Marshal(fileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(fileSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(fileSchemaURL)
	})
	return compiled, compileErr
}

type fileQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type fileLevel struct {
	Level     int            `json:"level"`
	Title     string         `json:"title"`
	Questions []fileQuestion `json:"questions"`
}

type fileCatalog struct {
	Levels []fileLevel `json:"levels"`
}

// Parse reads a JSON catalog, validates it against the catalog schema and the
// structural rules, and returns the resulting Catalog.
func Parse(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledFileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var fc fileCatalog
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	levels := make([]Level, 0, len(fc.Levels))
	for _, fl := range fc.Levels {
		l := Level{Number: fl.Level, Title: fl.Title}
		for _, fq := range fl.Questions {
			l.Questions = append(l.Questions, Question{
				Prompt:  fq.Question,
				Options: fq.Options,
				Correct: fq.Answer,
			})
		}
		levels = append(levels, l)
	}

	return New(levels)
}

// LoadFile reads and validates the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Resolve returns the catalog at path, or the built-in catalog when path is empty.
func Resolve(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
