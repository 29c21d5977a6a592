// Package models holds the records shared by the API, the workflows and storage.
package models

import "time"

type ExampleSummary struct {
	ID             string    `json:"id"`
	Format         string    `json:"format"`
	Pages          int       `json:"pages"`
	SHA256         string    `json:"sha256"`
	SplitByMarkers bool      `json:"split_by_markers"`
	Category       string    `json:"category"`
	ProblemSnippet string    `json:"problem_snippet"`
	LoadedAt       time.Time `json:"loaded_at"`
}

type ExampleUse struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"`
	Category   string  `json:"category,omitempty"`
}

type Solution struct {
	SolutionID   string       `json:"solution_id"`
	ExerciseID   string       `json:"exercise_id,omitempty"`
	Title        string       `json:"title,omitempty"`
	ProblemText  string       `json:"problem_text"`
	SolutionText string       `json:"solution_text"`
	Confidence   float64      `json:"confidence"`
	Diagnostic   string       `json:"diagnostic"`
	ExamplesUsed []ExampleUse `json:"examples_used"`
	CreatedAt    time.Time    `json:"created_at"`
}
