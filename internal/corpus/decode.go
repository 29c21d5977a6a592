package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"exsolver/internal/util"

	"github.com/ledongthuc/pdf"
)

const (
	FormatPDF = "pdf"
	FormatTXT = "txt"
)

// SupportedExtensions lists the document types the loader reads.
var SupportedExtensions = []string{".pdf", ".txt"}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("%s: %w", filepath.Base(path), util.ErrUnsupportedDocument)
	}
}

// readPages returns the normalized text of each page of the document.
func readPages(path string) ([]string, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	var pages []string
	if format == FormatPDF {
		pages, err = readPDFPages(path)
	} else {
		pages, err = readTextPages(path)
	}
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		if p != "" {
			return pages, nil
		}
	}
	return nil, util.ErrNoExtractableText
}

func readPDFPages(path string) (pages []string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	// The decoder panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("decode pdf: %v", rec)
		}
	}()

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		pages = append(pages, util.NormalizeText(text))
	}
	return pages, nil
}

// readTextPages splits plain-text documents on form feeds.
func readTextPages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text document: %w", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read text document: %w", err)
	}
	parts := strings.Split(string(raw), "\f")
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		pages = append(pages, util.NormalizeText(p))
	}
	return pages, nil
}
