package mcqtest

import "fmt"

// Validator checks one generated question. Validators may repair the
// question in place; they must be stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in errors and logs.
	Name() string

	Validate(q *Question, req Request) *ValidationError
}

// TestValidator checks the generated question set as a whole.
type TestValidator interface {
	Name() string

	ValidateTest(qs []Question, req Request) *ValidationError
}

// ValidationError describes why generated output was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether regenerating is likely to fix it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
