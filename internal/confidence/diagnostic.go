package confidence

import "strings"

const (
	lowBand  = 0.3
	highBand = 0.7
)

// Fixed diagnostics for resolutions that never reach adaptation.
const (
	NoExamplesDiagnostic = "Aucun exemple résolu n'est disponible. Ajoutez des exemples corrigés au corpus avant de soumettre un exercice."
	NoMatchDiagnostic    = "Le système ne dispose pas d'exemples similaires pour cet exercice. Essayez d'ajouter des exemples dans cette catégorie."
	failureSentence      = "Impossible d'adapter une solution pour cet exercice ; vérifiez que l'énoncé est complet."
)

type band int

const (
	low band = iota
	medium
	high
)

func bandOf(x float64) band {
	switch {
	case x < lowBand:
		return low
	case x < highBand:
		return medium
	default:
		return high
	}
}

var sentences = [4][3]string{
	{
		"Faible similarité avec les exemples connus.",
		"Similarité moyenne avec les exemples connus.",
		"Forte similarité avec les exemples connus.",
	},
	{
		"Peu d'éléments comptables détectés dans l'énoncé.",
		"Détection partielle des éléments comptables dans l'énoncé.",
		"Bonne détection des éléments comptables dans l'énoncé.",
	},
	{
		"Structure de l'exercice différente des exemples.",
		"Structure de l'exercice partiellement similaire aux exemples.",
		"Structure de l'exercice très similaire aux exemples.",
	},
	{
		"Faible cohérence entre les solutions potentielles.",
		"Cohérence moyenne entre les solutions potentielles.",
		"Forte cohérence entre les solutions potentielles.",
	},
}

// Diagnostic renders one sentence per signal, led by a failure sentence when
// the adaptation did not succeed.
func Diagnostic(a Assessment, adapted bool) string {
	parts := make([]string, 0, 5)
	if !adapted {
		parts = append(parts, failureSentence)
	}
	for i, v := range []float64{a.Similarity, a.DataCompleteness, a.StructuralMatch, a.SolutionConsistency} {
		parts = append(parts, sentences[i][bandOf(v)])
	}
	return strings.Join(parts, " ")
}
