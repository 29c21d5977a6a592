// Package extract pulls accounting facts out of free French text.
package extract

import (
	"sort"
	"strings"

	"exsolver/internal/util"
)

// Data holds the facts found in one text. Accounts and Dates keep every
// occurrence in text order; Amounts are unique by first appearance;
// Transactions follow pattern order.
type Data struct {
	Accounts     []string          `json:"accounts"`
	Amounts      []string          `json:"amounts"`
	Dates        []string          `json:"dates"`
	Transactions []string          `json:"transactions"`
	Keywords     []string          `json:"keywords"`
	Entities     map[string]string `json:"entities"`

	// Source is the text the facts came from; the adapter reads token
	// contexts out of it.
	Source string `json:"-"`
}

// Extractor runs ordered pattern sets over a text.
type Extractor struct {
	accounts     []Pattern
	amounts      []Pattern
	dates        []Pattern
	transactions []Pattern
	keywords     []string
	entities     []EntityPattern
}

func New() *Extractor {
	return &Extractor{
		accounts:     AccountPatterns(),
		amounts:      AmountPatterns(),
		dates:        DatePatterns(),
		transactions: TransactionPatterns(),
		keywords:     DefaultKeywords(),
		entities:     EntityPatterns(),
	}
}

var defaultExtractor = New()

// Extract runs the default pattern sets.
func Extract(text string) Data {
	return defaultExtractor.Extract(text)
}

func (e *Extractor) Extract(text string) Data {
	d := Data{Source: text, Entities: map[string]string{}}

	accountSpans := byPosition(dedupeSpans(collect(e.accounts, text)))
	for _, s := range accountSpans {
		d.Accounts = append(d.Accounts, s.text)
	}

	dateSpans := byPosition(dedupeSpans(collect(e.dates, text)))
	for _, s := range dateSpans {
		d.Dates = append(d.Dates, s.text)
	}

	d.Amounts = uniqueTexts(e.amountSpans(text, accountSpans, dateSpans))

	for _, s := range collect(e.transactions, text) {
		d.Transactions = append(d.Transactions, s.text)
	}

	lower := strings.ToLower(text)
	for _, kw := range e.keywords {
		if util.ContainsWord(lower, kw) {
			d.Keywords = append(d.Keywords, kw)
		}
	}

	for _, ep := range e.entities {
		if m := ep.re.FindStringSubmatch(text); len(m) > 1 {
			d.Entities[ep.Name] = m[1]
		}
	}
	return d
}

// amountSpans keeps standalone amounts: pieces of a date, an account code or
// a wider amount are not amounts.
func (e *Extractor) amountSpans(text string, accounts, dates []span) []span {
	all := dedupeSpans(collect(e.amounts, text))
	var kept []span
	for _, s := range all {
		if overlapsAny(s, accounts) || overlapsAny(s, dates) || insideWider(s, all) {
			continue
		}
		kept = append(kept, s)
	}
	return byPosition(kept)
}

// Placeholders are the tokens Mask writes in place of values.
type Placeholders struct {
	Date, Account, Amount string
}

var DefaultPlaceholders = Placeholders{Date: "numdate", Account: "numaccount", Amount: "numamount"}

// Mask replaces every date, then every account code, then every amount
// with its placeholder, so texts compare on wording rather than values.
func Mask(text string, ph Placeholders) string {
	return defaultExtractor.Mask(text, ph)
}

func (e *Extractor) Mask(text string, ph Placeholders) string {
	dates := dedupeSpans(collect(e.dates, text))
	accounts := dedupeSpans(collect(e.accounts, text))
	amounts := e.amountSpans(text, accounts, dates)

	type cut struct {
		span
		with string
	}
	var cuts []cut
	var taken []span
	add := func(spans []span, with string) {
		for _, s := range spans {
			if overlapsAny(s, taken) {
				continue
			}
			taken = append(taken, s)
			cuts = append(cuts, cut{s, with})
		}
	}
	add(dates, ph.Date)
	add(accounts, ph.Account)
	add(amounts, ph.Amount)
	if len(cuts) == 0 {
		return text
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, c := range cuts {
		b.WriteString(text[last:c.start])
		b.WriteString(c.with)
		last = c.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// Empty reports whether no fact at all was found.
func (d Data) Empty() bool {
	return len(d.Accounts) == 0 && len(d.Amounts) == 0 && len(d.Dates) == 0 &&
		len(d.Transactions) == 0 && len(d.Keywords) == 0 && len(d.Entities) == 0
}

func collect(patterns []Pattern, text string) []span {
	var out []span
	for _, p := range patterns {
		out = append(out, p.spans(text)...)
	}
	return out
}

func byPosition(spans []span) []span {
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

func dedupeSpans(spans []span) []span {
	seen := make(map[[2]int]bool, len(spans))
	out := spans[:0:0]
	for _, s := range spans {
		k := [2]int{s.start, s.end}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

func uniqueTexts(spans []span) []string {
	seen := make(map[string]bool, len(spans))
	var out []string
	for _, s := range spans {
		if seen[s.text] {
			continue
		}
		seen[s.text] = true
		out = append(out, s.text)
	}
	return out
}

func overlapsAny(s span, others []span) bool {
	for _, o := range others {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}

func insideWider(s span, others []span) bool {
	for _, o := range others {
		if o.start <= s.start && s.end <= o.end && o.end-o.start > s.end-s.start {
			return true
		}
	}
	return false
}
