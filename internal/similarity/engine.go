// Package similarity ranks solved examples against a new problem statement.
package similarity

import (
	"sort"
	"strings"

	"exsolver/internal/classify"
	"exsolver/internal/corpus"
	"exsolver/internal/extract"

	"go.uber.org/zap"
)

const (
	DefaultTopN          = 5
	DefaultMinSimilarity = 0.2

	lexicalWeight    = 0.7
	structuralWeight = 0.3
)

type Options struct {
	TopN          int
	MinSimilarity float64
}

func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, MinSimilarity: DefaultMinSimilarity}
}

func (o Options) normalized() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.MinSimilarity < 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	return o
}

// Result is one ranked example. Category is the topic detected for the
// query, empty when none was found.
type Result struct {
	Example    *corpus.Example
	Score      float64
	Lexical    float64
	Structural float64
	Category   classify.Category
}

type Engine struct {
	vectorizer Vectorizer
	log        *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{vectorizer: NewLexicalVectorizer(), log: log.Named("similarity")}
}

// Rank scores examples against problem and returns at most TopN results with
// a score above MinSimilarity, best first. Equal scores keep corpus order.
func (e *Engine) Rank(problem string, examples []*corpus.Example, opts Options) []Result {
	opts = opts.normalized()
	if len(examples) == 0 {
		return []Result{}
	}

	category := classify.Classify(problem)
	pool := examples
	if category != classify.None {
		var filtered []*corpus.Example
		for _, ex := range examples {
			if classify.Mentions(ex.ProblemText, category) {
				filtered = append(filtered, ex)
			}
		}
		if len(filtered) >= opts.TopN {
			pool = filtered
		}
		e.log.Debug("category detected",
			zap.String("category", string(category)),
			zap.Int("in_category", len(filtered)),
			zap.Int("pool", len(pool)))
	}

	docs := make([]string, 0, len(pool)+1)
	for _, ex := range pool {
		docs = append(docs, MaskText(ex.ProblemText))
	}
	docs = append(docs, MaskText(problem))
	vecs := e.vectorizer.FitTransform(docs)
	query := vecs[len(vecs)-1]
	queryData := extract.Extract(problem)

	resultCategory := category
	if category == classify.None {
		resultCategory = ""
	}
	results := make([]Result, 0, len(pool))
	for i, ex := range pool {
		lex := Cosine(query, vecs[i])
		st := Structural(queryData, ex.Problem)
		results = append(results, Result{
			Example:    ex,
			Score:      clamp01(lexicalWeight*lex + structuralWeight*st),
			Lexical:    lex,
			Structural: st,
			Category:   resultCategory,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	out := make([]Result, 0, min(opts.TopN, len(results)))
	for _, r := range results {
		if len(out) == opts.TopN {
			break
		}
		if r.Score > opts.MinSimilarity {
			out = append(out, r)
		}
	}
	return out
}

// MaskText lowercases text and replaces dates, account codes and amounts with
// placeholder words.
func MaskText(text string) string {
	return extract.Mask(strings.ToLower(text), extract.DefaultPlaceholders)
}
