package confidence

import (
	"strings"
	"testing"

	"exsolver/internal/extract"

	"github.com/stretchr/testify/assert"
)

func TestDataCompleteness(t *testing.T) {
	assert.Zero(t, DataCompleteness(extract.Extract("Quelle est la différence entre un actif et un passif ?")))
	assert.InDelta(t, 0.8, DataCompleteness(extract.Data{Accounts: []string{"60100"}, Amounts: []string{"1"}}), 1e-9)
	full := extract.Data{Accounts: []string{"a"}, Amounts: []string{"b"}, Dates: []string{"c"}, Transactions: []string{"d"}}
	assert.InDelta(t, 1.0, DataCompleteness(full), 1e-9)
}

func TestStructuralMatch(t *testing.T) {
	problem := extract.Data{Accounts: []string{"1", "2"}, Amounts: []string{"x"}, Dates: []string{"d"}}
	example := extract.Data{Accounts: []string{"1"}, Amounts: []string{"y"}}
	assert.InDelta(t, 0.4*0.5+0.4, StructuralMatch(problem, example), 1e-9)
	assert.Zero(t, StructuralMatch(extract.Data{}, extract.Data{}))
}

func TestSolutionConsistency(t *testing.T) {
	same := extract.Data{Accounts: []string{"411", "401"}}
	assert.Equal(t, 1.0, SolutionConsistency([]extract.Data{same, {Accounts: []string{"401", "411"}}}))

	assert.Equal(t, NeutralConsistency, SolutionConsistency(nil))
	assert.Equal(t, NeutralConsistency, SolutionConsistency([]extract.Data{same}))
	assert.Equal(t, NeutralConsistency, SolutionConsistency([]extract.Data{{}, {}}))

	mixed := []extract.Data{
		{Accounts: []string{"411", "401"}, Amounts: []string{"100"}},
		{Accounts: []string{"411"}, Amounts: []string{"200"}},
	}
	assert.InDelta(t, (0.5+0.0)/2, SolutionConsistency(mixed), 1e-9)
}

func TestEvaluate(t *testing.T) {
	problem := extract.Data{Accounts: []string{"60100"}, Amounts: []string{"100"}}
	a := Evaluate(problem, problem, 0.9, nil, true)

	assert.InDelta(t, 0.4*0.9+0.2*0.8+0.2*0.8+0.2*0.5, a.Confidence, 1e-9)
	assert.Equal(t, 0.9, a.Similarity)
	assert.Equal(t, NeutralConsistency, a.SolutionConsistency)
	assert.True(t, strings.HasPrefix(a.Diagnostic, "Forte similarité"))
}

func TestEvaluateFailedAdaptation(t *testing.T) {
	a := Evaluate(extract.Data{}, extract.Data{}, 0.95, nil, false)
	assert.Zero(t, a.Confidence)
	assert.True(t, strings.HasPrefix(a.Diagnostic, failureSentence))
}

func TestEvaluateClampsInputs(t *testing.T) {
	a := Evaluate(extract.Data{}, extract.Data{}, 1.7, nil, true)
	assert.Equal(t, 1.0, a.Similarity)
	assert.LessOrEqual(t, a.Confidence, 1.0)
}

func TestDiagnosticBands(t *testing.T) {
	got := Diagnostic(Assessment{Similarity: 0.29, DataCompleteness: 0.3, StructuralMatch: 0.69, SolutionConsistency: 0.7}, true)
	assert.Equal(t, strings.Join([]string{
		sentences[0][low], sentences[1][medium], sentences[2][medium], sentences[3][high],
	}, " "), got)
}
