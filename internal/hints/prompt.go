package hints

import (
	"fmt"
	"strings"

	"github.com/abhisek/levelup/internal/llm"
)

// Schema is the structured output every hint response must match.
var Schema = &llm.Schema{
	Name:        "quiz-hint",
	Description: "A short hint for a multiple-choice quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One or two sentences that point toward the right option without naming it",
			},
		},
		"required":             []string{"hint"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You help players of a web development quiz game.
The player picked a wrong option. Write a short, friendly hint (at most two sentences)
that helps them reason toward the right option.
Never state, quote or spell out the correct option.`

func userPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d question: %s\n", in.Level, in.Question.Prompt)
	b.WriteString("Options:\n")
	for i, o := range in.Question.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o)
	}
	fmt.Fprintf(&b, "The player chose: %s\n", in.Chosen)
	fmt.Fprintf(&b, "The correct option (do not reveal it): %s\n", in.Question.Correct)
	return b.String()
}
