// Package feedback turns a test performance summary into short
// motivational feedback.
package feedback

// DefaultTotalQuestions is the score denominator when a request leaves
// TotalQuestions unset.
const DefaultTotalQuestions = 20

// MaxWords is the length the prompt asks the model to stay within.
const MaxWords = 150

// DifficultyPerformance counts correct answers per difficulty.
type DifficultyPerformance struct {
	Easy   int `json:"easy" yaml:"easy"`
	Medium int `json:"medium" yaml:"medium"`
	Hard   int `json:"hard" yaml:"hard"`
}

// Request summarizes one taken test.
type Request struct {
	Score                 float64               `json:"score" yaml:"score"` // may be fractional or negative under negative marking
	Accuracy              float64               `json:"accuracy" yaml:"accuracy"` // percent
	CorrectAnswers        int                   `json:"correctAnswers" yaml:"correctAnswers"`
	WrongAnswers          int                   `json:"wrongAnswers" yaml:"wrongAnswers"`
	SkippedAnswers        int                   `json:"skippedAnswers" yaml:"skippedAnswers"`
	TimeTaken             float64               `json:"timeTaken" yaml:"timeTaken"` // minutes
	DifficultyPerformance DifficultyPerformance `json:"difficultyPerformance" yaml:"difficultyPerformance"`

	// TotalQuestions is the score denominator; nil means
	// DefaultTotalQuestions. A test with no questions sets it to 0.
	TotalQuestions *int `json:"totalQuestions,omitempty" yaml:"totalQuestions,omitempty"`
}

// Total returns the score denominator.
func (r Request) Total() int {
	if r.TotalQuestions != nil {
		return *r.TotalQuestions
	}
	return DefaultTotalQuestions
}

// WithTotal returns a copy of r with the denominator set to n.
func (r Request) WithTotal(n int) Request {
	r.TotalQuestions = &n
	return r
}

// Result is the generated feedback.
type Result struct {
	Feedback string `json:"feedback" yaml:"feedback"`
}
