package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Category
	}{
		{"empty", "", None},
		{"no stem", "Calculer le coût de revient unitaire.", None},
		{"amortization", "Calculer l'amortissement linéaire de l'immobilisation.", Amortization},
		{"vat rate", "Achat de marchandises à crédit pour 150 000 FCFA (HT), TVA 19,25%", VAT},
		{"journal", "Enregistrer au journal l'écriture de vente.", JournalEntry},
		{"income", "Déterminer le résultat: produits moins charges.", IncomeStatement},
		{"substring", "Les actifs et passifs du bilan.", BalanceSheet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestClassifyTieGoesToFirstDeclared(t *testing.T) {
	// one amortization stem, one balance sheet stem
	assert.Equal(t, Amortization, Classify("amortir le bilan"))
}

func TestScores(t *testing.T) {
	s := Scores("TVA collectée et TVA déductible")
	assert.Equal(t, 4, s[VAT])
	assert.Equal(t, 0, s[BalanceSheet])
	assert.Len(t, Categories(), 5)
}

func TestMentions(t *testing.T) {
	assert.True(t, Mentions("Dotation aux AMORTISSEMENTS", Amortization))
	assert.False(t, Mentions("Dotation aux amortissements", VAT))
	assert.False(t, Mentions("tva", None))
}
