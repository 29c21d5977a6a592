package corpus

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"exsolver/internal/classify"
	"exsolver/internal/extract"
	"exsolver/internal/models"
	"exsolver/internal/util"
)

// Example is a solved exercise. It is never modified once published.
type Example struct {
	ID             string
	Path           string
	Format         string
	Pages          int
	SHA256         string
	FullText       string
	ProblemText    string
	SolutionText   string
	SplitByMarkers bool
	Category       classify.Category
	LoadedAt       time.Time

	// Facts extracted once at load time.
	Problem  extract.Data
	Solution extract.Data
}

func (e *Example) Summary() models.ExampleSummary {
	return models.ExampleSummary{
		ID:             e.ID,
		Format:         e.Format,
		Pages:          e.Pages,
		SHA256:         e.SHA256,
		SplitByMarkers: e.SplitByMarkers,
		Category:       string(e.Category),
		ProblemSnippet: util.Snippet(e.ProblemText, 240),
		LoadedAt:       e.LoadedAt,
	}
}

// buildExample decodes and splits one document. The id is the file name.
func buildExample(path string) (*Example, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	pages, err := readPages(path)
	if err != nil {
		return nil, err
	}
	return newExample(filepath.Base(path), path, format, pages)
}

func newExample(id, path, format string, pages []string) (*Example, error) {
	full := strings.Join(pages, "\n")
	sp := SplitDocument(full)
	if strings.TrimSpace(sp.Problem) == "" {
		return nil, fmt.Errorf("%s: %w", id, util.ErrEmptyProblem)
	}
	sum, err := util.SHA256File(path)
	if err != nil {
		return nil, err
	}
	return &Example{
		ID:             id,
		Path:           path,
		Format:         format,
		Pages:          len(pages),
		SHA256:         sum,
		FullText:       full,
		ProblemText:    sp.Problem,
		SolutionText:   sp.Solution,
		SplitByMarkers: sp.ByMarkers,
		Category:       classify.Classify(sp.Problem),
		LoadedAt:       time.Now().UTC(),
		Problem:        extract.Extract(sp.Problem),
		Solution:       extract.Extract(sp.Solution),
	}, nil
}
