package corpus

import (
	"regexp"
	"strings"

	"exsolver/internal/util"
)

var (
	problemMarker  = regexp.MustCompile(`(?i)énoncé|exercice|problème`)
	solutionMarker = regexp.MustCompile(`(?i)solution|résolution|correction`)
)

// Split is a document cut into its statement and its worked answer.
type Split struct {
	Problem   string
	Solution  string
	ByMarkers bool
}

// SplitDocument cuts at section markers: the problem runs from the line
// holding the first problem marker to the line holding the first solution
// marker on a later line. Without both markers the sentences are halved.
func SplitDocument(full string) Split {
	if loc := problemMarker.FindStringIndex(full); loc != nil {
		pStart := lineStart(full, loc[0])
		from := nextLine(full, loc[1])
		if sloc := solutionMarker.FindStringIndex(full[from:]); sloc != nil {
			sStart := lineStart(full, from+sloc[0])
			return Split{
				Problem:   strings.TrimSpace(full[pStart:sStart]),
				Solution:  strings.TrimSpace(full[sStart:]),
				ByMarkers: true,
			}
		}
	}
	sentences := util.SplitSentences(full)
	mid := len(sentences) / 2
	return Split{
		Problem:  strings.Join(sentences[:mid], " "),
		Solution: strings.Join(sentences[mid:], " "),
	}
}

func lineStart(s string, i int) int {
	return strings.LastIndexByte(s[:i], '\n') + 1
}

func nextLine(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}
