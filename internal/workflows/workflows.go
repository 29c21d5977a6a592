package workflows

import (
	"path/filepath"
	"time"

	"exsolver/internal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetResolveStatus  = "GetResolveStatus"
	QueryGetIngestProgress = "GetIngestProgress"
)

// Workflow results.
const (
	StatusResolved   = "resolved"
	StatusUnresolved = "unresolved"
	StatusCompleted  = "completed"
)

const defaultIngestConcurrency = 4

func ResolveExerciseWorkflow(ctx workflow.Context, input ResolveExerciseInput) (ResolveExerciseOutput, error) {
	status := ResolveStatus{
		ExerciseID:  input.ExerciseID,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetResolveStatus, func() (ResolveStatus, error) {
		return status, nil
	}); err != nil {
		return ResolveExerciseOutput{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	status.CurrentStep = "resolve"
	status.Steps[status.CurrentStep] = "processing"
	var resolved activities.ResolveOutput
	if err := workflow.ExecuteActivity(ctx, "ResolveActivity", activities.ResolveInput{
		ProblemText:   input.ProblemText,
		TopN:          input.TopN,
		MinSimilarity: input.MinSimilarity,
	}).Get(ctx, &resolved); err != nil {
		status.Steps[status.CurrentStep] = "failed"
		status.Status = "failed"
		return ResolveExerciseOutput{}, err
	}
	status.Steps[status.CurrentStep] = "done"

	out := ResolveExerciseOutput{
		Status:     StatusUnresolved,
		Confidence: resolved.Result.Confidence,
		Message:    resolved.Result.Message,
	}
	if !resolved.Result.Success {
		status.CurrentStep = "done"
		status.Status = StatusUnresolved
		return out, nil
	}

	status.CurrentStep = "save_solution"
	status.Steps[status.CurrentStep] = "processing"
	var saved activities.SaveSolutionOutput
	if err := workflow.ExecuteActivity(ctx, "SaveSolutionActivity", activities.SaveSolutionInput{
		ExerciseID:  input.ExerciseID,
		Title:       input.Title,
		ProblemText: input.ProblemText,
		Result:      resolved.Result,
	}).Get(ctx, &saved); err != nil {
		status.Steps[status.CurrentStep] = "failed"
		status.Status = "failed"
		return ResolveExerciseOutput{}, err
	}
	status.Steps[status.CurrentStep] = "done"
	status.CurrentStep = "done"
	status.Status = StatusResolved

	out.Status = StatusResolved
	out.SolutionID = saved.SolutionID
	return out, nil
}

// ExampleIngestWorkflow validates every document of a directory, importing
// those that live outside the examples directory, then reloads the corpus
// once. A document that fails validation is counted and never aborts the run.
func ExampleIngestWorkflow(ctx workflow.Context, input ExampleIngestInput) (string, error) {
	progress := ExampleIngestProgress{PerDocument: map[string]string{}}
	if err := workflow.SetQueryHandler(ctx, QueryGetIngestProgress, func() (ExampleIngestProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var listOut activities.ListDocumentsOutput
	if err := workflow.ExecuteActivity(ctx, "ListDocumentsActivity", activities.ListDocumentsInput{InputDir: input.InputDir}).Get(ctx, &listOut); err != nil {
		return "", err
	}
	paths := listOut.Paths
	progress.Total = len(paths)
	batch := input.MaxConcurrent
	if batch <= 0 {
		batch = defaultIngestConcurrency
	}

	for i := 0; i < len(paths); i += batch {
		end := min(i+batch, len(paths))
		futures := make([]workflow.Future, 0, end-i)
		for _, path := range paths[i:end] {
			progress.PerDocument[filepath.Base(path)] = "validating"
			futures = append(futures, workflow.ExecuteActivity(ctx, "ValidateExampleActivity", activities.ValidateExampleInput{Path: path}))
		}
		for idx, f := range futures {
			name := filepath.Base(paths[i+idx])
			var v activities.ValidateExampleOutput
			if err := f.Get(ctx, &v); err != nil {
				progress.Failed++
				progress.PerDocument[name] = "invalid"
				continue
			}
			progress.Done++
			progress.PerDocument[name] = "valid"
			if v.Imported {
				progress.Imported++
				progress.PerDocument[name] = "imported"
			}
		}
	}

	var reloadOut activities.ReloadCorpusOutput
	if err := workflow.ExecuteActivity(ctx, "ReloadCorpusActivity").Get(ctx, &reloadOut); err != nil {
		return "", err
	}
	progress.Examples = reloadOut.Examples

	_ = workflow.ExecuteActivity(ctx, "WriteIngestSummaryActivity", activities.WriteIngestSummaryInput{
		RunID: workflow.GetInfo(ctx).WorkflowExecution.RunID,
		Summary: map[string]any{
			"input_dir":           input.InputDir,
			"total":               progress.Total,
			"valid":               progress.Done,
			"invalid":             progress.Failed,
			"imported":            progress.Imported,
			"examples":            progress.Examples,
			"per_document_status": progress.PerDocument,
			"generated_at":        workflow.Now(ctx),
		},
	}).Get(ctx, nil)

	return StatusCompleted, nil
}
