package adapt

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"exsolver/internal/util"
)

type replacement struct {
	start, end int
	with       string
}

// applyReplacements rewrites text in one pass so a replaced value is never
// matched again. Overlaps go to the earliest, then the longest, occurrence.
func applyReplacements(text string, reps []replacement) string {
	if len(reps) == 0 {
		return text
	}
	sort.SliceStable(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, r := range reps {
		if r.start < last {
			continue
		}
		b.WriteString(text[last:r.start])
		b.WriteString(r.with)
		last = r.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// tokenOccurrences finds whole-token occurrences of from.
func tokenOccurrences(text, from, to string) []replacement {
	var out []replacement
	for _, at := range util.WordIndices(text, from) {
		out = append(out, replacement{at, at + len(from), to})
	}
	return out
}

// amountOccurrences finds whole-token occurrences of from that are not a
// slice of a longer grouped or decimal number: "100 000" is left alone in
// "1 100 000", "100 000 000" and "100 000,50".
func amountOccurrences(text, from, to string) []replacement {
	var out []replacement
	for _, r := range tokenOccurrences(text, from, to) {
		if continuesNumberBefore(text[:r.start]) || continuesNumberAfter(text[r.end:]) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isGroupSep(r rune) bool {
	return r == ' ' || r == '\u00a0' || r == '\u202f'
}

func continuesNumberBefore(head string) bool {
	r, size := utf8.DecodeLastRuneInString(head)
	if size == 0 {
		return false
	}
	rest := head[:len(head)-size]
	switch {
	case r == ',' || r == '.':
		d, _ := utf8.DecodeLastRuneInString(rest)
		return unicode.IsDigit(d)
	case isGroupSep(r):
		digits := 0
		for len(rest) > 0 {
			d, n := utf8.DecodeLastRuneInString(rest)
			if !unicode.IsDigit(d) {
				break
			}
			digits++
			rest = rest[:len(rest)-n]
		}
		return digits >= 1 && digits <= 3
	}
	return false
}

func continuesNumberAfter(tail string) bool {
	r, size := utf8.DecodeRuneInString(tail)
	if size == 0 {
		return false
	}
	rest := tail[size:]
	switch {
	case r == ',' || r == '.':
		d, _ := utf8.DecodeRuneInString(rest)
		return unicode.IsDigit(d)
	case isGroupSep(r):
		digits := 0
		for _, d := range rest {
			if !unicode.IsDigit(d) {
				break
			}
			digits++
		}
		return digits == 3
	}
	return false
}

// literalOccurrences finds every occurrence of from, without boundaries.
func literalOccurrences(text, from, to string) []replacement {
	var out []replacement
	for i := 0; i <= len(text)-len(from); {
		j := strings.Index(text[i:], from)
		if j < 0 {
			break
		}
		at := i + j
		out = append(out, replacement{at, at + len(from), to})
		i = at + len(from)
	}
	return out
}
