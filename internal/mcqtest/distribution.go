package mcqtest

import (
	"fmt"
	"strings"
)

// DistributionValidator requires the per-difficulty counts to equal the
// request.
type DistributionValidator struct{}

func (v *DistributionValidator) Name() string { return "distribution" }

func (v *DistributionValidator) ValidateTest(qs []Question, req Request) *ValidationError {
	got := make(map[Difficulty]int, len(Difficulties))
	for _, q := range qs {
		got[q.Difficulty]++
	}

	for _, d := range Difficulties {
		if got[d] != req.Count(d) {
			return &ValidationError{
				Validator: v.Name(),
				Message: fmt.Sprintf("got easy=%d medium=%d hard=%d, want easy=%d medium=%d hard=%d",
					got[DifficultyEasy], got[DifficultyMedium], got[DifficultyHard],
					req.EasyCount, req.MediumCount, req.HardCount),
				Retryable: true,
			}
		}
	}
	return nil
}

// UniquenessValidator rejects a test that asks the same question twice.
type UniquenessValidator struct{}

func (v *UniquenessValidator) Name() string { return "uniqueness" }

func (v *UniquenessValidator) ValidateTest(qs []Question, _ Request) *ValidationError {
	seen := make(map[string]int, len(qs))
	for i, q := range qs {
		key := normalizeQuestion(q.Question)
		if first, dup := seen[key]; dup {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("questions %d and %d are the same", first+1, i+1),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}

func normalizeQuestion(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
