package mcqtest

import "github.com/toppers/mocktest/internal/llm"

// RequestSchema validates generator input.
var RequestSchema = &llm.Schema{
	Name:        "mcq-test-request",
	Description: "Subject, chapter and per-difficulty question counts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject":     map[string]any{"type": "string", "minLength": 1},
			"chapter":     map[string]any{"type": "string", "minLength": 1},
			"easyCount":   map[string]any{"type": "integer", "minimum": 0},
			"mediumCount": map[string]any{"type": "integer", "minimum": 0},
			"hardCount":   map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []any{"subject", "chapter", "easyCount", "mediumCount", "hardCount"},
	},
}

// TestSchema constrains the model output. Structured-output modes need an
// object root, so the question list sits under "questions".
var TestSchema = &llm.Schema{
	Name:        "mcq-test",
	Description: "An ordered list of multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": questionSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"description": "The MCQ question text.",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    OptionsPerQuestion,
			"maxItems":    OptionsPerQuestion,
			"description": "The four options for the question.",
		},
		"correctAnswer": map[string]any{
			"type":        "string",
			"description": "The correct answer among the options.",
		},
		"difficulty": map[string]any{
			"type":        "string",
			"enum":        []any{"easy", "medium", "hard"},
			"description": "The difficulty level of the question.",
		},
	},
	"required":             []any{"question", "options", "correctAnswer", "difficulty"},
	"additionalProperties": false,
}

// testOutput is the decoded model response.
type testOutput struct {
	Questions []Question `json:"questions"`
}
