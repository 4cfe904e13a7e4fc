// Package mcqtest generates multiple-choice mock tests for a subject and
// chapter with a fixed difficulty mix.
package mcqtest

import (
	"encoding/json"
	"strings"
	"time"
)

// Difficulty is the difficulty band of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the bands in test order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Default per-difficulty counts, giving a 20 question test.
const (
	DefaultEasyCount   = 5
	DefaultMediumCount = 10
	DefaultHardCount   = 5
)

// OptionsPerQuestion is the fixed number of choices on every question.
const OptionsPerQuestion = 4

// Request asks for a test on one chapter of one subject.
type Request struct {
	Subject     string `json:"subject" yaml:"subject"`
	Chapter     string `json:"chapter" yaml:"chapter"`
	EasyCount   int    `json:"easyCount" yaml:"easyCount"`
	MediumCount int    `json:"mediumCount" yaml:"mediumCount"`
	HardCount   int    `json:"hardCount" yaml:"hardCount"`
}

// NewRequest returns a request with the default 5/10/5 mix.
func NewRequest(subject, chapter string) Request {
	return Request{
		Subject:     subject,
		Chapter:     chapter,
		EasyCount:   DefaultEasyCount,
		MediumCount: DefaultMediumCount,
		HardCount:   DefaultHardCount,
	}
}

// UnmarshalJSON fills absent counts with their defaults. An explicit 0 is
// kept.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		Subject     string `json:"subject"`
		Chapter     string `json:"chapter"`
		EasyCount   *int   `json:"easyCount"`
		MediumCount *int   `json:"mediumCount"`
		HardCount   *int   `json:"hardCount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = NewRequest(raw.Subject, raw.Chapter)
	if raw.EasyCount != nil {
		r.EasyCount = *raw.EasyCount
	}
	if raw.MediumCount != nil {
		r.MediumCount = *raw.MediumCount
	}
	if raw.HardCount != nil {
		r.HardCount = *raw.HardCount
	}
	return nil
}

// Count returns the requested number of questions for d.
func (r Request) Count(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return r.EasyCount
	case DifficultyMedium:
		return r.MediumCount
	case DifficultyHard:
		return r.HardCount
	}
	return 0
}

// Total is the requested test length.
func (r Request) Total() int {
	return r.EasyCount + r.MediumCount + r.HardCount
}

// Question is one multiple-choice question. CorrectAnswer holds the text of
// one of the options.
type Question struct {
	Question      string     `json:"question" yaml:"question"`
	Options       []string   `json:"options" yaml:"options"`
	CorrectAnswer string     `json:"correctAnswer" yaml:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
}

// IsCorrect reports whether answer picks the correct option. Surrounding
// whitespace is ignored.
func (q Question) IsCorrect(answer string) bool {
	return strings.TrimSpace(answer) != "" && strings.TrimSpace(answer) == strings.TrimSpace(q.CorrectAnswer)
}

// Test is a generated test together with where it came from.
type Test struct {
	ID          string     `json:"id" yaml:"id"`
	Subject     string     `json:"subject" yaml:"subject"`
	Chapter     string     `json:"chapter" yaml:"chapter"`
	Model       string     `json:"model,omitempty" yaml:"model,omitempty"`
	GeneratedAt time.Time  `json:"generatedAt" yaml:"generatedAt"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// CountByDifficulty tallies questions per band.
func (t *Test) CountByDifficulty() map[Difficulty]int {
	counts := make(map[Difficulty]int, len(Difficulties))
	for _, q := range t.Questions {
		counts[q.Difficulty]++
	}
	return counts
}
