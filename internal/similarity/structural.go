package similarity

import (
	"strings"

	"exsolver/internal/extract"
	"exsolver/internal/util"
)

type feature struct {
	weight float64
	items  func(extract.Data) []string
}

var structuralFeatures = []feature{
	{0.4, func(d extract.Data) []string { return d.Accounts }},
	{0.3, func(d extract.Data) []string { return d.Amounts }},
	{0.1, func(d extract.Data) []string { return d.Dates }},
	{0.2, func(d extract.Data) []string { return d.Transactions }},
}

const (
	transactionFeature = 3
	transactionSample  = 5
	oneSidedCredit     = 0.1
)

// Structural compares the shape of two extractions: per feature the ratio of
// list sizes, with transactions also scored on word overlap. Features absent
// on both sides are ignored; a feature present on one side only earns 0.1.
func Structural(a, b extract.Data) float64 {
	var score, total float64
	for i, f := range structuralFeatures {
		xa, xb := f.items(a), f.items(b)
		switch {
		case len(xa) == 0 && len(xb) == 0:
			continue
		case len(xa) == 0 || len(xb) == 0:
			score += oneSidedCredit * f.weight
			total += f.weight
			continue
		}
		s := SizeRatio(len(xa), len(xb))
		if i == transactionFeature {
			s = (s + phraseOverlap(xa, xb)) / 2
		}
		score += s * f.weight
		total += f.weight
	}
	if total == 0 {
		return 0
	}
	return clamp01(score / total)
}

// SizeRatio is min/max of two counts, 0 when either is zero.
func SizeRatio(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return float64(min(a, b)) / float64(max(a, b))
}

// phraseOverlap averages the word-set Jaccard index over every pair of the
// first few phrases on each side.
func phraseOverlap(a, b []string) float64 {
	a, b = a[:min(len(a), transactionSample)], b[:min(len(b), transactionSample)]
	var sum float64
	for _, pa := range a {
		wa := wordSet(pa)
		for _, pb := range b {
			sum += Jaccard(wa, wordSet(pb))
		}
	}
	return sum / float64(len(a)*len(b))
}

func wordSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !util.IsWordRune(r) })
	return toSet(fields...)
}

// Jaccard returns |a∩b|/|a∪b|, 0 when either set is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}
