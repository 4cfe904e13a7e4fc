package mcqtest

// Config controls the Generator.
type Config struct {
	// Validators run in order on every question; the first failure stops
	// the pipeline.
	Validators []Validator

	// TestValidators run after every question passed.
	TestValidators []TestValidator

	MaxTokens   int
	Temperature float64

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int
}

// DefaultConfig returns the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerKeyValidator{},
		},
		TestValidators: []TestValidator{
			&DistributionValidator{},
			&UniquenessValidator{},
		},
		MaxTokens:   8192,
		Temperature: 0.7,
		MaxAttempts: 3,
	}
}
