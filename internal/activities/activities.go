package activities

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"exsolver/internal/config"
	"exsolver/internal/corpus"
	"exsolver/internal/models"
	"exsolver/internal/resolver"
	"exsolver/internal/similarity"
	"exsolver/internal/util"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"
)

// SolutionStore persists resolved exercises.
type SolutionStore interface {
	Insert(ctx context.Context, s models.Solution) (models.Solution, error)
}

type Activities struct {
	cfg       config.Config
	corpus    *corpus.Repository
	resolver  *resolver.Resolver
	solutions SolutionStore
	log       *zap.Logger
}

// New wires the activities. solutions may be nil when no database is
// configured; SaveSolutionActivity then fails without retrying.
func New(cfg config.Config, repo *corpus.Repository, res *resolver.Resolver, solutions SolutionStore, log *zap.Logger) *Activities {
	if log == nil {
		log = zap.NewNop()
	}
	return &Activities{cfg: cfg, corpus: repo, resolver: res, solutions: solutions, log: log.Named("activities")}
}

func (a *Activities) ResolveActivity(ctx context.Context, in ResolveInput) (ResolveOutput, error) {
	_ = ctx
	res := a.resolver.Resolve(in.ProblemText, a.options(in.TopN, in.MinSimilarity))
	return ResolveOutput{Result: res}, nil
}

// options fills unset tuning values from the configuration.
func (a *Activities) options(topN int, minSimilarity float64) similarity.Options {
	opts := similarity.Options{TopN: a.cfg.TopN, MinSimilarity: a.cfg.MinSimilarity}
	if topN > 0 {
		opts.TopN = topN
	}
	if minSimilarity > 0 {
		opts.MinSimilarity = minSimilarity
	}
	return opts
}

func (a *Activities) SaveSolutionActivity(ctx context.Context, in SaveSolutionInput) (SaveSolutionOutput, error) {
	if a.solutions == nil {
		return SaveSolutionOutput{}, temporal.NewNonRetryableApplicationError("solution store not configured", "NoStore", nil)
	}
	if !in.Result.Success {
		return SaveSolutionOutput{}, temporal.NewNonRetryableApplicationError("refusing to save an unresolved exercise", "Unresolved", nil)
	}
	s := in.Result.Solution(uuid.NewString(), in.ExerciseID, in.Title, in.ProblemText)
	saved, err := a.solutions.Insert(ctx, s)
	if err != nil {
		return SaveSolutionOutput{}, err
	}
	return SaveSolutionOutput{SolutionID: saved.SolutionID}, nil
}

func (a *Activities) ListDocumentsActivity(ctx context.Context, in ListDocumentsInput) (ListDocumentsOutput, error) {
	_ = ctx
	dir := in.InputDir
	if dir == "" {
		dir = a.corpus.Dir()
	}
	paths, err := util.ListFiles(dir, corpus.SupportedExtensions...)
	if err != nil {
		return ListDocumentsOutput{}, fmt.Errorf("list documents: %w", err)
	}
	return ListDocumentsOutput{Paths: paths}, nil
}

// ValidateExampleActivity checks that a document decodes and holds a problem
// statement. Documents outside the examples directory are copied into it.
// Invalid documents fail without retrying.
func (a *Activities) ValidateExampleActivity(ctx context.Context, in ValidateExampleInput) (ValidateExampleOutput, error) {
	_ = ctx
	var (
		ex       *corpus.Example
		err      error
		imported bool
	)
	if a.corpus.Owns(in.Path) {
		ex, err = a.corpus.Validate(in.Path)
	} else {
		ex, err = a.corpus.Import(in.Path)
		imported = err == nil
	}
	if err != nil {
		if invalidDocument(err) {
			return ValidateExampleOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidExample", err)
		}
		return ValidateExampleOutput{}, err
	}
	a.log.Debug("example validated", zap.String("path", in.Path), zap.Bool("imported", imported))
	return ValidateExampleOutput{Example: ex.Summary(), Imported: imported}, nil
}

func invalidDocument(err error) bool {
	return errors.Is(err, util.ErrNoExtractableText) ||
		errors.Is(err, util.ErrEmptyProblem) ||
		errors.Is(err, util.ErrUnsupportedDocument)
}

func (a *Activities) ReloadCorpusActivity(ctx context.Context) (ReloadCorpusOutput, error) {
	if err := a.corpus.Reload(ctx); err != nil {
		return ReloadCorpusOutput{}, err
	}
	return ReloadCorpusOutput{Examples: a.corpus.Len()}, nil
}

func (a *Activities) WriteIngestSummaryActivity(ctx context.Context, in WriteIngestSummaryInput) error {
	_ = ctx
	outPath := filepath.Join(a.cfg.DataOutRoot, "ingest", in.RunID, "summary.json")
	return util.WriteJSONAtomic(outPath, in.Summary)
}
