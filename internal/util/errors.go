package util

import "errors"

var (
	ErrNoExtractableText   = errors.New("no extractable text found in document")
	ErrEmptyProblem        = errors.New("document yields an empty problem statement")
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrExampleNotFound     = errors.New("example not found")
	ErrCorpusDirUnreadable = errors.New("examples directory unreadable")
	ErrSolutionNotFound    = errors.New("solution not found")
)
