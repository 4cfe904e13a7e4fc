package mcqtest

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that a question has text, exactly four
// distinct non-empty options and a known difficulty.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Request) *ValidationError {
	if strings.TrimSpace(q.Question) == "" {
		return v.fail("question is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return v.fail(fmt.Sprintf("expected %d options, got %d", OptionsPerQuestion, len(q.Options)))
	}

	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return v.fail(fmt.Sprintf("option %d is empty", i+1))
		}
		if seen[key] {
			return v.fail(fmt.Sprintf("option %q appears twice", opt))
		}
		seen[key] = true
	}

	if !q.Difficulty.Valid() {
		return v.fail(fmt.Sprintf("difficulty must be easy, medium or hard, got %q", q.Difficulty))
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
