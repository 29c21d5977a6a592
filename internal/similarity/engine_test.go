package similarity

import (
	"testing"

	"exsolver/internal/classify"
	"exsolver/internal/corpus"
	"exsolver/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func example(id, problem string) *corpus.Example {
	return &corpus.Example{
		ID:          id,
		ProblemText: problem,
		Category:    classify.Classify(problem),
		Problem:     extract.Extract(problem),
	}
}

func TestRankEmptyCorpus(t *testing.T) {
	got := NewEngine(nil).Rank("Calculer la TVA.", nil, DefaultOptions())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankIdenticalProblemFirst(t *testing.T) {
	text := "Le 15/03/2024, achat de marchandises pour 1 250 000. Débit 60100 pour 1 250 000."
	examples := []*corpus.Example{
		example("other.txt", "Calcul du coût de revient d'un produit fini."),
		example("same.txt", text),
	}
	got := NewEngine(nil).Rank(text, examples, DefaultOptions())

	require.NotEmpty(t, got)
	assert.Equal(t, "same.txt", got[0].Example.ID)
	assert.InDelta(t, 1.0, got[0].Lexical, 1e-9)
	assert.Greater(t, got[0].Score, 0.9)
}

func TestRankMaskedValuesDoNotMatter(t *testing.T) {
	examples := []*corpus.Example{example("a.txt", "Achat de marchandises pour 100 000 le 01/02/2024, compte 60100.")}
	got := NewEngine(nil).Rank("Achat de marchandises pour 750 000 le 12/12/2025, compte 60200.", examples, DefaultOptions())

	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0].Lexical, 1e-9)
}

func TestRankCategoryPrefilter(t *testing.T) {
	examples := []*corpus.Example{
		example("vat.txt", "Calculer la TVA déductible sur un achat de 100 000."),
		example("discount.txt", "Calculer la remise sur une vente de 300 000."),
	}
	query := "Calculer la TVA collectée sur une vente de 200 000."
	engine := NewEngine(nil)

	narrow := engine.Rank(query, examples, Options{TopN: 1, MinSimilarity: 0})
	require.Len(t, narrow, 1)
	assert.Equal(t, "vat.txt", narrow[0].Example.ID)
	assert.Equal(t, classify.VAT, narrow[0].Category)

	// too few examples in the category: the whole corpus competes
	wide := engine.Rank(query, examples, Options{TopN: 5, MinSimilarity: 0})
	require.Len(t, wide, 2)
}

func TestRankOrderingAndThreshold(t *testing.T) {
	examples := []*corpus.Example{
		example("a.txt", "Enregistrer au journal la facture d'achat de 500 000."),
		example("b.txt", "Enregistrer au journal la facture de vente de 800 000."),
		example("c.txt", "Présenter le bilan: actif immobilisé et passif."),
		example("d.txt", "Enregistrer au journal le paiement de la facture de 500 000 par chèque."),
	}
	opts := Options{TopN: 2, MinSimilarity: 0.1}
	got := NewEngine(nil).Rank("Enregistrer au journal la facture d'achat de 650 000.", examples, opts)

	require.LessOrEqual(t, len(got), opts.TopN)
	for i, r := range got {
		assert.Greater(t, r.Score, opts.MinSimilarity)
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, r.Score)
		}
	}
	require.NotEmpty(t, got)
	assert.Equal(t, "a.txt", got[0].Example.ID)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{TopN: 0, MinSimilarity: -1}.normalized()
	assert.Equal(t, DefaultOptions(), o)
}
