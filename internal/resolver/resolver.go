// Package resolver answers a new exercise by ranking solved examples,
// adapting the best one and scoring the result.
package resolver

import (
	"time"

	"exsolver/internal/adapt"
	"exsolver/internal/confidence"
	"exsolver/internal/corpus"
	"exsolver/internal/extract"
	"exsolver/internal/metrics"
	"exsolver/internal/models"
	"exsolver/internal/similarity"
	"exsolver/internal/util"

	"go.uber.org/zap"
)

const (
	// Candidates adapted to measure agreement between solutions.
	consistencyCandidates = 3

	unclassified = "non classé"
)

// Outcome messages.
const (
	MessageResolved       = "Solution trouvée en se basant sur des exemples similaires."
	MessageNoExamples     = "Aucun exemple résolu n'est disponible."
	MessageNoMatch        = "Aucun exemple similaire trouvé pour cet exercice."
	MessageAdaptationFail = "Impossible d'adapter la solution à cet exercice."
)

// Corpus is the read side of the example repository.
type Corpus interface {
	All() []*corpus.Example
}

// Result is the answer to one resolution request.
type Result struct {
	Success             bool                `json:"success"`
	SolutionText        string              `json:"solution_text,omitempty"`
	Confidence          float64             `json:"confidence"`
	Diagnostic          string              `json:"diagnostic"`
	Message             string              `json:"message"`
	SimilarExamples     []models.ExampleUse `json:"similar_examples"`
	DataCompleteness    float64             `json:"data_completeness"`
	StructuralMatch     float64             `json:"structural_match"`
	SolutionConsistency float64             `json:"solution_consistency"`
	Warnings            []string            `json:"warnings,omitempty"`

	Outcome string `json:"-"`
}

type Resolver struct {
	corpus  Corpus
	engine  *similarity.Engine
	adapter *adapt.Adapter
	metrics *metrics.Metrics
	log     *zap.Logger
}

func New(c Corpus, log *zap.Logger, m *metrics.Metrics) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		corpus:  c,
		engine:  similarity.NewEngine(log),
		adapter: adapt.New(log),
		metrics: m,
		log:     log.Named("resolver"),
	}
}

// Resolve runs one resolution. It never fails: every outcome, including an
// empty corpus or a broken adaptation, is reported in the Result.
func (r *Resolver) Resolve(problem string, opts similarity.Options) Result {
	problem = util.NormalizeText(problem)
	res := r.resolve(problem, opts)
	r.metrics.ObserveResolution(res.Outcome, res.Confidence)
	r.log.Info("resolution finished",
		zap.String("outcome", res.Outcome),
		zap.Float64("confidence", res.Confidence),
		zap.Int("similar_examples", len(res.SimilarExamples)))
	return res
}

func (r *Resolver) resolve(problem string, opts similarity.Options) Result {
	examples := r.corpus.All()
	if len(examples) == 0 {
		return Result{
			Message:         MessageNoExamples,
			Diagnostic:      confidence.NoExamplesDiagnostic,
			SimilarExamples: []models.ExampleUse{},
			Outcome:         metrics.OutcomeNoExamples,
		}
	}

	start := time.Now()
	ranked := r.engine.Rank(problem, examples, opts)
	r.metrics.ObserveRank(time.Since(start))
	if len(ranked) == 0 {
		return Result{
			Message:         MessageNoMatch,
			Diagnostic:      confidence.NoMatchDiagnostic,
			SimilarExamples: []models.ExampleUse{},
			Outcome:         metrics.OutcomeNoMatch,
		}
	}

	query := extract.Extract(problem)
	best := ranked[0]
	adapted, err := r.adapter.Adapt(query, best.Example.Problem, best.Example.Solution, best.Example.SolutionText)
	ok := err == nil
	if !ok {
		r.log.Error("adaptation failed", zap.String("example", best.Example.ID), zap.Error(err))
	}

	var alternatives []extract.Data
	if ok && len(ranked) > 1 {
		alternatives = r.alternatives(query, adapted, ranked)
	}
	a := confidence.Evaluate(query, best.Example.Problem, best.Score, alternatives, ok)

	res := Result{
		Success:             ok,
		Confidence:          a.Confidence,
		Diagnostic:          a.Diagnostic,
		SimilarExamples:     uses(ranked),
		DataCompleteness:    a.DataCompleteness,
		StructuralMatch:     a.StructuralMatch,
		SolutionConsistency: a.SolutionConsistency,
	}
	if !ok {
		res.Message = MessageAdaptationFail
		res.Outcome = metrics.OutcomeAdaptationError
		return res
	}
	res.SolutionText = adapted.Text
	res.Warnings = adapted.Warnings
	res.Message = MessageResolved
	res.Outcome = metrics.OutcomeResolved
	return res
}

// alternatives extracts facts from the solutions adapted from the top
// candidates. The best candidate's adaptation is reused; candidates whose
// adaptation fails are left out.
func (r *Resolver) alternatives(query extract.Data, best adapt.Adaptation, ranked []similarity.Result) []extract.Data {
	n := min(consistencyCandidates, len(ranked))
	out := make([]extract.Data, 0, n)
	out = append(out, extract.Extract(best.Text))
	for _, c := range ranked[1:n] {
		ad, err := r.adapter.Adapt(query, c.Example.Problem, c.Example.Solution, c.Example.SolutionText)
		if err != nil {
			r.log.Warn("candidate adaptation failed", zap.String("example", c.Example.ID), zap.Error(err))
			continue
		}
		out = append(out, extract.Extract(ad.Text))
	}
	return out
}

func uses(ranked []similarity.Result) []models.ExampleUse {
	out := make([]models.ExampleUse, 0, len(ranked))
	for _, r := range ranked {
		category := string(r.Category)
		if category == "" {
			category = unclassified
		}
		out = append(out, models.ExampleUse{ID: r.Example.ID, Similarity: r.Score, Category: category})
	}
	return out
}

// Solution turns a successful result into a record ready to persist.
func (res Result) Solution(solutionID, exerciseID, title, problem string) models.Solution {
	return models.Solution{
		SolutionID:   solutionID,
		ExerciseID:   exerciseID,
		Title:        title,
		ProblemText:  problem,
		SolutionText: res.SolutionText,
		Confidence:   res.Confidence,
		Diagnostic:   res.Diagnostic,
		ExamplesUsed: res.SimilarExamples,
	}
}
