package workflows

type ResolveExerciseInput struct {
	ExerciseID    string  `json:"exercise_id,omitempty"`
	Title         string  `json:"title,omitempty"`
	ProblemText   string  `json:"problem_text"`
	TopN          int     `json:"top_n,omitempty"`
	MinSimilarity float64 `json:"min_similarity,omitempty"`
}

type ResolveExerciseOutput struct {
	Status     string  `json:"status"`
	SolutionID string  `json:"solution_id,omitempty"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

type ResolveStatus struct {
	ExerciseID  string            `json:"exercise_id,omitempty"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	Steps       map[string]string `json:"steps"`
}

type ExampleIngestInput struct {
	InputDir      string `json:"input_dir,omitempty"`
	MaxConcurrent int    `json:"max_concurrent,omitempty"`
}

type ExampleIngestProgress struct {
	Total       int               `json:"total"`
	Done        int               `json:"done"`
	Failed      int               `json:"failed"`
	Imported    int               `json:"imported"`
	Examples    int               `json:"examples"`
	PerDocument map[string]string `json:"per_document_status"`
}
