package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDocumentByMarkers(t *testing.T) {
	full := "Cours de comptabilité\nÉnoncé : une machine acquise 5 000 000 le 01/01/2024.\n" +
		"Durée 5 ans.\nCorrection\nDotation annuelle : 1 000 000."
	sp := SplitDocument(full)

	assert.True(t, sp.ByMarkers)
	assert.Equal(t, "Énoncé : une machine acquise 5 000 000 le 01/01/2024.\nDurée 5 ans.", sp.Problem)
	assert.Equal(t, "Correction\nDotation annuelle : 1 000 000.", sp.Solution)
}

func TestSplitDocumentIgnoresSolutionMarkerOnProblemLine(t *testing.T) {
	full := "Exercice avec solution détaillée\nAchat de marchandises 100 000.\nSolution\nDébit 60100 : 100 000."
	sp := SplitDocument(full)

	assert.True(t, sp.ByMarkers)
	assert.Equal(t, "Exercice avec solution détaillée\nAchat de marchandises 100 000.", sp.Problem)
	assert.Equal(t, "Solution\nDébit 60100 : 100 000.", sp.Solution)
}

func TestSplitDocumentFallsBackToHalves(t *testing.T) {
	sp := SplitDocument("Première phrase. Deuxième phrase. Troisième phrase. Quatrième phrase.")

	assert.False(t, sp.ByMarkers)
	assert.Equal(t, "Première phrase. Deuxième phrase.", sp.Problem)
	assert.Equal(t, "Troisième phrase. Quatrième phrase.", sp.Solution)
}

func TestSplitDocumentSingleSentenceHasNoProblem(t *testing.T) {
	sp := SplitDocument("Une seule phrase sans marqueur.")
	assert.Empty(t, sp.Problem)
	assert.Equal(t, "Une seule phrase sans marqueur.", sp.Solution)
}
