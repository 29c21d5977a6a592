package adapt

import (
	"sort"
	"unicode/utf8"

	"exsolver/internal/similarity"
	"exsolver/internal/util"
)

const contextWindow = 20

// contexts returns the text within contextWindow runes of each whole-token
// occurrence of term.
func contexts(text, term string) []string {
	var out []string
	for _, at := range util.WordIndices(text, term) {
		start := at
		for i := 0; i < contextWindow && start > 0; i++ {
			_, size := utf8.DecodeLastRuneInString(text[:start])
			start -= size
		}
		end := at + len(term)
		for i := 0; i < contextWindow && end < len(text); i++ {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}
		out = append(out, text[start:end])
	}
	return out
}

// contextSimilarity is the mean pairwise cosine between two sets of windows
// under a vectorizer fitted on both sets.
func contextSimilarity(v similarity.Vectorizer, a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	vecs := v.FitTransform(append(append([]string{}, a...), b...))
	var sum float64
	for i := range a {
		for j := range b {
			sum += similarity.Cosine(vecs[i], vecs[len(a)+j])
		}
	}
	return sum / float64(len(a)*len(b))
}

// scoreMatrix scores every (old, new) account pair by context similarity.
func scoreMatrix(v similarity.Vectorizer, oldText string, old []string, newText string, fresh []string) [][]float64 {
	newCtx := make([][]string, len(fresh))
	for j, acc := range fresh {
		newCtx[j] = contexts(newText, acc)
	}
	m := make([][]float64, len(old))
	for i, acc := range old {
		oldCtx := contexts(oldText, acc)
		m[i] = make([]float64, len(fresh))
		for j := range fresh {
			m[i][j] = contextSimilarity(v, oldCtx, newCtx[j])
		}
	}
	return m
}

// greedyAssign pairs rows with columns, best score first, each row and column
// used at most once. Ties go to the lower row, then the lower column. It
// returns, per row, the assigned column or -1.
func greedyAssign(scores [][]float64) []int {
	type cell struct {
		row, col int
		score    float64
	}
	var cells []cell
	cols := 0
	for i, row := range scores {
		cols = max(cols, len(row))
		for j, s := range row {
			cells = append(cells, cell{i, j, s})
		}
	}
	sort.SliceStable(cells, func(a, b int) bool { return cells[a].score > cells[b].score })

	assigned := make([]int, len(scores))
	for i := range assigned {
		assigned[i] = -1
	}
	usedCol := make([]bool, cols)
	for _, c := range cells {
		if assigned[c.row] >= 0 || usedCol[c.col] {
			continue
		}
		assigned[c.row] = c.col
		usedCol[c.col] = true
	}
	return assigned
}
