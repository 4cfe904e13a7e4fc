package mcqtest

import (
	"fmt"
	"regexp"
	"strings"
)

// AnswerKeyValidator makes CorrectAnswer equal to the text of one option.
// It repairs drift models commonly produce: surrounding whitespace, a case
// mismatch, or an option letter such as "B" or "B) Paris".
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

// optionLetter matches "B", "b.", "(B) Paris", "B: Paris", "Option B".
var optionLetter = regexp.MustCompile(`^(?i)(?:option\s+)?\(?([a-d])(?:[.):]\s*|\s+|$)(.*)$`)

func (v *AnswerKeyValidator) Validate(q *Question, _ Request) *ValidationError {
	if opt, ok := matchOption(q.Options, q.CorrectAnswer); ok {
		q.CorrectAnswer = opt
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("correct answer %q matches no option", q.CorrectAnswer),
		Retryable: true,
	}
}

func matchOption(options []string, answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}

	for _, opt := range options {
		if strings.TrimSpace(opt) == answer {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), answer) {
			return opt, true
		}
	}

	m := optionLetter.FindStringSubmatch(answer)
	if m == nil {
		return "", false
	}
	idx := int(strings.ToLower(m[1])[0] - 'a')
	if idx >= len(options) {
		return "", false
	}
	rest := strings.TrimSpace(m[2])
	if rest == "" || strings.EqualFold(rest, strings.TrimSpace(options[idx])) {
		return options[idx], true
	}
	return "", false
}
