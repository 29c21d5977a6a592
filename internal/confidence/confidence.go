// Package confidence scores an adapted solution and explains the score.
package confidence

import (
	"math"

	"exsolver/internal/extract"
	"exsolver/internal/similarity"
)

// NeutralConsistency is used when fewer than two adapted solutions can be compared.
const NeutralConsistency = 0.5

// Assessment holds every signal in [0,1] and the resulting confidence.
type Assessment struct {
	Confidence          float64 `json:"confidence"`
	Similarity          float64 `json:"similarity"`
	DataCompleteness    float64 `json:"data_completeness"`
	StructuralMatch     float64 `json:"structural_match"`
	SolutionConsistency float64 `json:"solution_consistency"`
	Diagnostic          string  `json:"diagnostic"`
}

// Evaluate scores the best example's adaptation. alternatives holds the facts
// extracted from solutions adapted from the top candidates, best first.
func Evaluate(problem, example extract.Data, sim float64, alternatives []extract.Data, adapted bool) Assessment {
	a := Assessment{
		Similarity:          clamp01(sim),
		DataCompleteness:    DataCompleteness(problem),
		StructuralMatch:     StructuralMatch(problem, example),
		SolutionConsistency: SolutionConsistency(alternatives),
	}
	if adapted {
		a.Confidence = clamp01(0.4*a.Similarity + 0.2*a.DataCompleteness + 0.2*a.StructuralMatch + 0.2*a.SolutionConsistency)
	}
	a.Diagnostic = Diagnostic(a, adapted)
	return a
}

// DataCompleteness weighs which kinds of facts the problem states.
func DataCompleteness(d extract.Data) float64 {
	var s float64
	if len(d.Accounts) > 0 {
		s += 0.4
	}
	if len(d.Amounts) > 0 {
		s += 0.4
	}
	if len(d.Dates) > 0 {
		s += 0.1
	}
	if len(d.Transactions) > 0 {
		s += 0.1
	}
	return clamp01(s)
}

// StructuralMatch sums weighted size ratios of the features both sides state.
func StructuralMatch(problem, example extract.Data) float64 {
	s := 0.4*similarity.SizeRatio(len(problem.Accounts), len(example.Accounts)) +
		0.4*similarity.SizeRatio(len(problem.Amounts), len(example.Amounts)) +
		0.1*similarity.SizeRatio(len(problem.Dates), len(example.Dates)) +
		0.1*similarity.SizeRatio(len(problem.Transactions), len(example.Transactions))
	return clamp01(s)
}

// SolutionConsistency averages, over every pair of solutions, the Jaccard
// overlap of their account sets and of their amount sets. Pairs where a set
// is empty on either side contribute nothing for it.
func SolutionConsistency(solutions []extract.Data) float64 {
	if len(solutions) < 2 {
		return NeutralConsistency
	}
	var scores []float64
	for i := 0; i < len(solutions); i++ {
		for j := i + 1; j < len(solutions); j++ {
			if s, ok := overlap(solutions[i].Accounts, solutions[j].Accounts); ok {
				scores = append(scores, s)
			}
			if s, ok := overlap(solutions[i].Amounts, solutions[j].Amounts); ok {
				scores = append(scores, s)
			}
		}
	}
	if len(scores) == 0 {
		return NeutralConsistency
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return clamp01(sum / float64(len(scores)))
}

func overlap(a, b []string) (float64, bool) {
	sa, sb := set(a), set(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0, false
	}
	return similarity.Jaccard(sa, sb), true
}

func set(xs []string) map[string]struct{} {
	out := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		out[x] = struct{}{}
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
