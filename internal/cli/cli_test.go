package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exsolver/internal/config"
	"exsolver/internal/models"
	"exsolver/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const purchaseDoc = "Exercice 1\nLe 15/03/2024, achat de marchandises à crédit pour 1 250 000. Comptes 60100 et 40100.\n" +
	"Solution\nDébit 60100 : 1 250 000\nCrédit 40100 : 1 250 000\n"

func examplesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "achat.txt"), []byte(purchaseDoc), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(config.Config{TopN: 5, MinSimilarity: 0.2})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveText(t *testing.T) {
	out, err := run(t, "resolve", "--examples-dir", examplesDir(t),
		"--text", "Exercice 2\nLe 20/04/2024, achat de marchandises à crédit pour 300 000. Comptes 60200 et 40200.")
	require.NoError(t, err)
	assert.Contains(t, out, resolver.MessageResolved)
	assert.Contains(t, out, "Débit 60200 : 300 000")
	assert.Contains(t, out, "achat.txt")
}

func TestResolveJSONFromFile(t *testing.T) {
	problem := filepath.Join(t.TempDir(), "exo.txt")
	require.NoError(t, os.WriteFile(problem, []byte("Quelle est la couleur du ciel ?"), 0o644))

	out, err := run(t, "resolve", "--examples-dir", examplesDir(t), "--file", problem, "-o", "json")
	require.NoError(t, err)
	var res resolver.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Success)
	assert.Equal(t, resolver.MessageNoMatch, res.Message)
}

func TestResolveFlagErrors(t *testing.T) {
	_, err := run(t, "resolve", "--examples-dir", examplesDir(t))
	assert.Error(t, err)

	_, err = run(t, "resolve", "--examples-dir", examplesDir(t), "--text", "a", "--file", "b")
	assert.Error(t, err)

	_, err = run(t, "resolve", "--examples-dir", examplesDir(t), "--text", "a", "--min-similarity", "1.5")
	assert.Error(t, err)

	_, err = run(t, "resolve", "--examples-dir", filepath.Join(t.TempDir(), "missing"), "--text", "achat")
	assert.Error(t, err)
}

func TestExamplesList(t *testing.T) {
	dir := examplesDir(t)

	out, err := run(t, "examples", "list", "--examples-dir", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Contains(t, out, "achat.txt")

	out, err = run(t, "examples", "list", "--examples-dir", dir, "-o", "json")
	require.NoError(t, err)
	var summaries []models.ExampleSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].SplitByMarkers)
}

func TestExtract(t *testing.T) {
	out, err := run(t, "extract", "--text", "Débit 60100 pour 1 250 000 le 15/03/2024.")
	require.NoError(t, err)
	assert.Contains(t, out, "Comptes : 60100")
	assert.Contains(t, out, "Montants : 1 250 000")
	assert.Contains(t, out, "Dates : 15/03/2024")

	_, err = run(t, "extract")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	out, err := run(t, "classify", "--text", "Calculer la TVA collectée et la TVA déductible.", "-o", "json")
	require.NoError(t, err)
	var got struct {
		Category string         `json:"category"`
		Scores   map[string]int `json:"scores"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "vat", got.Category)
	assert.Positive(t, got.Scores["vat"])
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "examples", "list", "--examples-dir", examplesDir(t), "-o", "yaml")
	assert.Error(t, err)
}
