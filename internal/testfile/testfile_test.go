package testfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toppers/mocktest/internal/mcqtest"
)

func sampleTest() *mcqtest.Test {
	return &mcqtest.Test{
		ID:          "3f1c9a2e-5d55-4a57-9b3c-1d1f3e8e0a11",
		Subject:     "Chemistry",
		Chapter:     "Acids, Bases and Salts",
		Model:       "gemini-2.0-flash",
		GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Questions: []mcqtest.Question{
			{
				Question:      "What is the pH of pure water at 25 C?",
				Options:       []string{"5", "7", "9", "14"},
				CorrectAnswer: "7",
				Difficulty:    mcqtest.DifficultyEasy,
			},
			{
				Question:      "Which gas is released when zinc reacts with dilute HCl?",
				Options:       []string{"Oxygen", "Chlorine", "Hydrogen", "Nitrogen"},
				CorrectAnswer: "Hydrogen",
				Difficulty:    mcqtest.DifficultyMedium,
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"test.yaml", "test.yml", "test.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sampleTest()

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Subject, got.Subject)
			assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
			assert.Equal(t, want.Questions, got.Questions)
		})
	}
}

func TestSave_FormatByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "t.JSON")
	require.NoError(t, Save(jsonPath, sampleTest()))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"id\""), "expected indented JSON, got %q", data)

	yamlPath := filepath.Join(dir, "t.txt")
	require.NoError(t, Save(yamlPath, sampleTest()))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "subject: Chemistry")
	assert.Contains(t, string(data), "correctAnswer: Hydrogen")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `id: abc
subject: Physics
chapter: Optics
generatedAt: 2026-03-01T09:30:00Z
questions:
  - question: Which mirror is used in car headlights?
    options: [Plane, Convex, Concave, Cylindrical]
    correctAnswer: Concave
    difficulty: easy
`

func TestLoad_YAML(t *testing.T) {
	got, err := Load(writeFile(t, "t.yaml", validYAML))
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Concave", got.Questions[0].CorrectAnswer)
	assert.Empty(t, got.Model)
}

func TestLoad_RepairsAnswerLetter(t *testing.T) {
	content := strings.Replace(validYAML, "correctAnswer: Concave", "correctAnswer: C", 1)
	got, err := Load(writeFile(t, "t.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, "Concave", got.Questions[0].CorrectAnswer)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unknown yaml field",
			file:    "t.yaml",
			content: validYAML + "score: 12\n",
			wantErr: "decode yaml",
		},
		{
			name:    "two yaml documents",
			file:    "t.yaml",
			content: validYAML + "---\n" + validYAML,
			wantErr: "more than one document",
		},
		{
			name:    "unknown json field",
			file:    "t.json",
			content: `{"id":"x","subject":"P","chapter":"O","questions":[],"extra":true}`,
			wantErr: "decode json",
		},
		{
			name:    "two json documents",
			file:    "t.json",
			content: `{"id":"x","questions":[]} {"id":"y","questions":[]}`,
			wantErr: "more than one document",
		},
		{
			name:    "three options",
			file:    "t.yaml",
			content: strings.Replace(validYAML, "[Plane, Convex, Concave, Cylindrical]", "[Plane, Convex, Concave]", 1),
			wantErr: "question 1",
		},
		{
			name:    "answer not an option",
			file:    "t.yaml",
			content: strings.Replace(validYAML, "correctAnswer: Concave", "correctAnswer: Periscope", 1),
			wantErr: "answer-key",
		},
		{
			name:    "bad difficulty",
			file:    "t.yaml",
			content: strings.Replace(validYAML, "difficulty: easy", "difficulty: trivial", 1),
			wantErr: "structural",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyQuestionList(t *testing.T) {
	got, err := Load(writeFile(t, "t.json", `{"id":"x","subject":"P","chapter":"O","generatedAt":"2026-03-01T09:30:00Z"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Questions)
	assert.Empty(t, got.Questions)
}
