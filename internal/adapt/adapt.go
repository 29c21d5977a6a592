// Package adapt rewrites a solved example's solution for a new problem by
// mapping the example's accounts, amounts, dates and named values onto the
// new problem's.
package adapt

import (
	"fmt"
	"sort"

	"exsolver/internal/extract"
	"exsolver/internal/similarity"
	"exsolver/internal/util"

	"go.uber.org/zap"
)

// Pair maps a value of the example onto a value of the new problem.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Adaptation is the rewritten solution and the mappings that produced it.
type Adaptation struct {
	Text     string   `json:"text"`
	Accounts []Pair   `json:"accounts"`
	Amounts  []Pair   `json:"amounts"`
	Dates    []Pair   `json:"dates"`
	Entities []Pair   `json:"entities"`
	Warnings []string `json:"warnings,omitempty"`

	// Solution accounts of the example that no mapping touched.
	Untouched []string `json:"untouched,omitempty"`
}

type Adapter struct {
	contextVectorizer similarity.Vectorizer
	log               *zap.Logger
}

func New(log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{contextVectorizer: similarity.NewContextVectorizer(), log: log.Named("adapt")}
}

// Adapt maps exampleProblem's values onto problem's and rewrites
// solutionText. A partial mapping is applied as far as it goes; the error is
// reserved for internal failures.
func (a *Adapter) Adapt(problem, exampleProblem, exampleSolution extract.Data, solutionText string) (out Adaptation, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("adaptation failed", zap.Any("panic", r))
			out, err = Adaptation{}, fmt.Errorf("adapt solution: %v", r)
		}
	}()

	out.Accounts = a.mapAccounts(problem, exampleProblem)
	out.Amounts = mapAmounts(problem.Amounts, exampleProblem.Amounts)
	out.Dates = positional(exampleProblem.Dates, problem.Dates)
	out.Entities = mapEntities(problem.Entities, exampleProblem.Entities)

	var reps []replacement
	for _, p := range out.Accounts {
		if p.From != p.To {
			reps = append(reps, tokenOccurrences(solutionText, p.From, p.To)...)
		}
	}
	amountKeys := make(map[string]bool, len(out.Amounts))
	for _, p := range out.Amounts {
		amountKeys[p.From] = true
		if p.From != p.To {
			reps = append(reps, amountOccurrences(solutionText, p.From, p.To)...)
		}
	}
	text := applyReplacements(solutionText, reps)

	reps = nil
	for _, p := range out.Dates {
		if p.From != p.To {
			reps = append(reps, literalOccurrences(text, p.From, p.To)...)
		}
	}
	for _, p := range out.Entities {
		if p.From != p.To && !amountKeys[p.From] {
			reps = append(reps, literalOccurrences(text, p.From, p.To)...)
		}
	}
	out.Text = applyReplacements(text, reps)

	out.Untouched = untouched(exampleSolution.Accounts, out.Accounts)
	out.Warnings = a.checkConsistency(out.Text, problem, exampleProblem)
	return out, nil
}

// mapAccounts pairs accounts by position when both sides list the same
// number, otherwise by context similarity.
func (a *Adapter) mapAccounts(problem, example extract.Data) []Pair {
	if len(example.Accounts) == 0 || len(problem.Accounts) == 0 {
		return nil
	}
	if len(example.Accounts) == len(problem.Accounts) {
		return positional(example.Accounts, problem.Accounts)
	}
	old, fresh := unique(example.Accounts), unique(problem.Accounts)
	scores := scoreMatrix(a.contextVectorizer, example.Source, old, problem.Source, fresh)
	var pairs []Pair
	for i, j := range greedyAssign(scores) {
		if j >= 0 {
			pairs = append(pairs, Pair{From: old[i], To: fresh[j]})
		}
	}
	return pairs
}

// mapAmounts pairs amounts by rank of value.
func mapAmounts(problem, example []string) []Pair {
	return positional(sortByValue(example), sortByValue(problem))
}

// positional pairs from[i] with to[i]. A repeated from value keeps its first pairing.
func positional(from, to []string) []Pair {
	n := min(len(from), len(to))
	seen := make(map[string]bool, n)
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		if seen[from[i]] {
			continue
		}
		seen[from[i]] = true
		pairs = append(pairs, Pair{From: from[i], To: to[i]})
	}
	return pairs
}

func mapEntities(problem, example map[string]string) []Pair {
	names := make([]string, 0, len(example))
	for name := range example {
		if _, ok := problem[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	pairs := make([]Pair, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, Pair{From: example[name], To: problem[name]})
	}
	return pairs
}

func (a *Adapter) checkConsistency(text string, problem, example extract.Data) []string {
	var warnings []string
	for _, acc := range unique(problem.Accounts) {
		if !util.ContainsWord(text, acc) {
			a.log.Warn("account missing from adapted solution", zap.String("account", acc))
			warnings = append(warnings, fmt.Sprintf("Le compte %s n'apparaît pas dans la solution adaptée.", acc))
		}
	}
	if len(problem.Amounts) > 0 && len(example.Amounts) > 0 && len(problem.Amounts) != len(example.Amounts) {
		warnings = append(warnings, fmt.Sprintf(
			"Nombre de montants différent (%d dans l'exemple, %d dans l'exercice) : la correspondance par rang peut être erronée.",
			len(example.Amounts), len(problem.Amounts)))
	}
	return warnings
}

func untouched(solutionAccounts []string, mapped []Pair) []string {
	from := make(map[string]bool, len(mapped))
	for _, p := range mapped {
		from[p.From] = true
	}
	var out []string
	for _, acc := range unique(solutionAccounts) {
		if !from[acc] {
			out = append(out, acc)
		}
	}
	return out
}

func unique(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
