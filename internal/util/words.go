package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r is part of a word (letter, digit or underscore).
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordIndices returns the byte offsets of every occurrence of needle in s that
// is not glued to a word rune on either side.
func WordIndices(s, needle string) []int {
	if needle == "" {
		return nil
	}
	var out []int
	for from := 0; from <= len(s)-len(needle); {
		i := strings.Index(s[from:], needle)
		if i < 0 {
			break
		}
		at := from + i
		end := at + len(needle)
		if wordEdge(s, at, end) {
			out = append(out, at)
		}
		_, size := utf8.DecodeRuneInString(s[at:])
		from = at + size
	}
	return out
}

func ContainsWord(s, needle string) bool {
	return len(WordIndices(s, needle)) > 0
}

func wordEdge(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if IsWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if IsWordRune(r) {
			return false
		}
	}
	return true
}
