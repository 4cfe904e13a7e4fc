// Package scoring grades a taken test and summarizes it for the feedback
// flow.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/toppers/mocktest/internal/feedback"
	"github.com/toppers/mocktest/internal/mcqtest"
)

// Answer is the option text a student picked. Empty means skipped.
type Answer string

// Skipped marks an unanswered question.
const Skipped Answer = ""

// Outcome is the grading of one question.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

// Grade classifies a single answer.
func Grade(q mcqtest.Question, a Answer) Outcome {
	switch {
	case a == Skipped:
		return OutcomeSkipped
	case q.IsCorrect(string(a)):
		return OutcomeCorrect
	default:
		return OutcomeWrong
	}
}

// Score grades answers against test. answers[i] belongs to
// test.Questions[i]. Score is the number of correct answers; accuracy is
// correct over attempted as a percentage, 0 when nothing was attempted.
func Score(test *mcqtest.Test, answers []Answer, elapsed time.Duration) (feedback.Request, error) {
	if len(answers) != len(test.Questions) {
		return feedback.Request{}, fmt.Errorf("got %d answers for %d questions", len(answers), len(test.Questions))
	}

	req := feedback.Request{
		TimeTaken: round(elapsed.Minutes(), 1),
	}.WithTotal(len(test.Questions))

	for i, q := range test.Questions {
		switch Grade(q, answers[i]) {
		case OutcomeSkipped:
			req.SkippedAnswers++
		case OutcomeWrong:
			req.WrongAnswers++
		case OutcomeCorrect:
			req.CorrectAnswers++
			switch q.Difficulty {
			case mcqtest.DifficultyEasy:
				req.DifficultyPerformance.Easy++
			case mcqtest.DifficultyMedium:
				req.DifficultyPerformance.Medium++
			case mcqtest.DifficultyHard:
				req.DifficultyPerformance.Hard++
			}
		}
	}

	req.Score = float64(req.CorrectAnswers)
	if attempted := req.CorrectAnswers + req.WrongAnswers; attempted > 0 {
		req.Accuracy = round(float64(req.CorrectAnswers)/float64(attempted)*100, 2)
	}
	return req, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
