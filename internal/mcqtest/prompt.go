package mcqtest

import "text/template"

const systemPrompt = `You are an expert teacher generating Multiple Choice Questions (MCQs) for students.`

var userTemplate = template.Must(template.New("mcq-test").Parse(`Generate a set of MCQs for the subject "{{.Subject}}", chapter "{{.Chapter}}".

The MCQs should follow this difficulty pattern:
- {{.EasyCount}} easy questions
- {{.MediumCount}} medium questions
- {{.HardCount}} hard questions

Each question must have four options, with only one correct answer.
Ensure the questions are unique and cover different concepts within the chapter.

Output the questions in JSON format. Each question should have the following keys:
- question: The MCQ question text.
- options: An array of four strings representing the options.
- correctAnswer: The correct answer among the options.
- difficulty: The difficulty level of the question (easy, medium, or hard).

Here's an example of the expected JSON format:
{
  "questions": [
    {
      "question": "What is the capital of France?",
      "options": ["Berlin", "Paris", "Rome", "Madrid"],
      "correctAnswer": "Paris",
      "difficulty": "easy"
    }
  ]
}
`))
