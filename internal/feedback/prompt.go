package feedback

import "text/template"

const systemPrompt = `You are an AI-powered educational assistant providing motivational feedback to a student after they have completed a mock test.`

var userTemplate = template.Must(template.New("feedback").Parse(`Based on their performance, offer specific encouragement and learning advice.

Here's the student's performance data:
- Score: {{.Score}}/{{.Total}}
- Accuracy: {{.Accuracy}}%
- Correct Answers: {{.CorrectAnswers}}
- Wrong Answers: {{.WrongAnswers}}
- Skipped Answers: {{.SkippedAnswers}}
- Time Taken: {{.TimeTaken}} minutes
- Difficulty Performance: Easy: {{.DifficultyPerformance.Easy}}, Medium: {{.DifficultyPerformance.Medium}}, Hard: {{.DifficultyPerformance.Hard}}

Focus on:
- Highlighting strengths and areas of improvement.
- Providing actionable learning advice.
- Maintaining a positive and encouraging tone.

Provide feedback that is specific and tailored to the student's performance.
The feedback should be concise and easy to understand.
The feedback should be no more than 150 words.
`))
