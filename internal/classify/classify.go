// Package classify assigns an exercise text to one accounting topic.
package classify

import "strings"

type Category string

const (
	Amortization    Category = "amortization"
	BalanceSheet    Category = "balance_sheet"
	VAT             Category = "vat"
	JournalEntry    Category = "journal_entry"
	IncomeStatement Category = "income_statement"
	None            Category = "none"
)

type topic struct {
	category Category
	stems    []string
}

// Declaration order breaks ties.
var topics = []topic{
	{Amortization, []string{"amortissement", "amortir", "immobilisation", "dépréciation"}},
	{BalanceSheet, []string{"bilan", "actif", "passif", "patrimoine"}},
	{VAT, []string{"tva", "taxe", "déductible", "collectée"}},
	{JournalEntry, []string{"journal", "écriture", "comptabiliser", "enregistrer"}},
	{IncomeStatement, []string{"résultat", "produit", "charge", "bénéfice", "perte"}},
}

// Categories lists every topic in declaration order, without None.
func Categories() []Category {
	out := make([]Category, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.category)
	}
	return out
}

// Scores counts stem occurrences per category as plain substrings of the
// lowercased text.
func Scores(text string) map[Category]int {
	lower := strings.ToLower(text)
	out := make(map[Category]int, len(topics))
	for _, t := range topics {
		n := 0
		for _, stem := range t.stems {
			n += strings.Count(lower, stem)
		}
		out[t.category] = n
	}
	return out
}

// Mentions reports whether text contains at least one stem of c.
func Mentions(text string, c Category) bool {
	lower := strings.ToLower(text)
	for _, t := range topics {
		if t.category != c {
			continue
		}
		for _, stem := range t.stems {
			if strings.Contains(lower, stem) {
				return true
			}
		}
	}
	return false
}

// Classify returns the category with the most stem hits, or None when no
// stem occurs.
func Classify(text string) Category {
	scores := Scores(text)
	best, bestScore := None, 0
	for _, t := range topics {
		if s := scores[t.category]; s > bestScore {
			best, bestScore = t.category, s
		}
	}
	return best
}
