package adapt

import (
	"strings"
	"testing"

	"exsolver/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptReplacesWholeTokensOnly(t *testing.T) {
	problem := extract.Data{Accounts: []string{"602", "402"}, Amounts: []string{"250 000"}}
	example := extract.Data{Accounts: []string{"601", "401"}, Amounts: []string{"100 000"}}
	solution := "Débit 601 : 100 000\nCrédit 401 : 100 000\nTotal 1 100 000 ; réf 6010 ; 100 000,50"

	got, err := New(nil).Adapt(problem, example, extract.Data{}, solution)
	require.NoError(t, err)
	assert.Equal(t, "Débit 602 : 250 000\nCrédit 402 : 250 000\nTotal 1 100 000 ; réf 6010 ; 100 000,50", got.Text)
	assert.Equal(t, []Pair{{"601", "602"}, {"401", "402"}}, got.Accounts)
	assert.Empty(t, got.Warnings)
}

func TestAdaptToItselfIsIdentity(t *testing.T) {
	text := "Le 15/03/2024, achat pour 1 250 000. Débit 60100, crédit 40100. Capital 5 000 000."
	data := extract.Extract(text)
	solution := "Débit 60100 : 1 250 000 au 15/03/2024\nCrédit 40100 : 1 250 000"

	got, err := New(nil).Adapt(data, data, extract.Extract(solution), solution)
	require.NoError(t, err)
	assert.Equal(t, solution, got.Text)
}

func TestAdaptIsDeterministic(t *testing.T) {
	problem := extract.Extract("Achat 300 000 et 20 000 de frais, comptes 60100 40100 62400.")
	example := extract.Extract("Achat 100 000 et 5 000 de frais, comptes 60100 40100.")
	solution := "Débit 60100 : 100 000\nDébit 62400 : 5 000\nCrédit 40100 : 105 000"
	a := New(nil)

	first, err := a.Adapt(problem, example, extract.Data{}, solution)
	require.NoError(t, err)
	second, err := a.Adapt(problem, example, extract.Data{}, solution)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAdaptSwapDoesNotCascade(t *testing.T) {
	problem := extract.Data{Accounts: []string{"40100", "60100"}}
	example := extract.Data{Accounts: []string{"60100", "40100"}}

	got, err := New(nil).Adapt(problem, example, extract.Data{}, "60100 / 40100")
	require.NoError(t, err)
	assert.Equal(t, "40100 / 60100", got.Text)
}

func TestAdaptAmountsByRank(t *testing.T) {
	problem := extract.Data{Amounts: []string{"1 200 000"}}
	example := extract.Data{Amounts: []string{"500 000", "100 000"}}

	got, err := New(nil).Adapt(problem, example, extract.Data{}, "Achat 500 000 et frais 100 000")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"100 000", "1 200 000"}}, got.Amounts)
	assert.Equal(t, "Achat 500 000 et frais 1 200 000", got.Text)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "montants")
}

func TestAdaptAccountsByContext(t *testing.T) {
	exampleText := "Stock marchandises compte 60100 achat stock ---------------------------- " +
		"dette fournisseur compte 40100 dette fournisseur"
	problemText := "dette fournisseur compte 40200 dette fournisseur ---------------------------- " +
		"Stock marchandises compte 60200 achat stock ---------------------------- " +
		"banque tresorerie compte 52100 banque tresorerie"
	problem := extract.Extract(problemText)
	example := extract.Extract(exampleText)
	require.Len(t, problem.Accounts, 3)

	solution := "Débit 60100 / Crédit 40100"
	got, err := New(nil).Adapt(problem, example, extract.Extract(solution), solution)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Pair{{"60100", "60200"}, {"40100", "40200"}}, got.Accounts)
	assert.Equal(t, "Débit 60200 / Crédit 40200", got.Text)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "52100")
}

func TestAdaptDatesAndEntities(t *testing.T) {
	problem := extract.Data{
		Amounts:  []string{"5 000 000"},
		Dates:    []string{"31/12/2025"},
		Entities: map[string]string{extract.EntityCapital: "5 000 000", extract.EntityVAT: "18"},
	}
	example := extract.Data{
		Amounts:  []string{"1 000 000"},
		Dates:    []string{"31/12/2024"},
		Entities: map[string]string{extract.EntityCapital: "1 000 000", extract.EntityVAT: "19,25"},
	}

	got, err := New(nil).Adapt(problem, example, extract.Data{}, "Au 31/12/2024, capital 1 000 000, TVA 19,25 %.")
	require.NoError(t, err)
	assert.Equal(t, "Au 31/12/2025, capital 5 000 000, TVA 18 %.", got.Text)
}

func TestAdaptReportsUntouchedSolutionAccounts(t *testing.T) {
	problem := extract.Data{Accounts: []string{"60200"}}
	example := extract.Data{Accounts: []string{"60100"}}
	solution := "Débit 60100 ; Débit 44520 ; Crédit 40100"

	got, err := New(nil).Adapt(problem, example, extract.Extract(solution), solution)
	require.NoError(t, err)
	assert.Equal(t, []string{"44520", "40100"}, got.Untouched)
	assert.True(t, strings.HasPrefix(got.Text, "Débit 60200"))
}

func TestAdaptWithNothingToMap(t *testing.T) {
	got, err := New(nil).Adapt(extract.Data{}, extract.Data{}, extract.Data{}, "Solution sans chiffres.")
	require.NoError(t, err)
	assert.Equal(t, "Solution sans chiffres.", got.Text)
	assert.Empty(t, got.Warnings)
}
