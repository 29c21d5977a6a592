package activities

import (
	"exsolver/internal/models"
	"exsolver/internal/resolver"
)

type ResolveInput struct {
	ProblemText   string  `json:"problem_text"`
	TopN          int     `json:"top_n,omitempty"`
	MinSimilarity float64 `json:"min_similarity,omitempty"`
}

type ResolveOutput struct {
	Result resolver.Result `json:"result"`
}

type SaveSolutionInput struct {
	ExerciseID  string          `json:"exercise_id,omitempty"`
	Title       string          `json:"title,omitempty"`
	ProblemText string          `json:"problem_text"`
	Result      resolver.Result `json:"result"`
}

type SaveSolutionOutput struct {
	SolutionID string `json:"solution_id"`
}

type ListDocumentsInput struct {
	InputDir string `json:"input_dir"`
}

type ListDocumentsOutput struct {
	Paths []string `json:"paths"`
}

type ValidateExampleInput struct {
	Path string `json:"path"`
}

type ValidateExampleOutput struct {
	Example  models.ExampleSummary `json:"example"`
	Imported bool                  `json:"imported"`
}

type ReloadCorpusOutput struct {
	Examples int `json:"examples"`
}

type WriteIngestSummaryInput struct {
	RunID   string         `json:"run_id"`
	Summary map[string]any `json:"summary"`
}
