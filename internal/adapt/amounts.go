package adapt

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^\d,.]`)

// AmountValue parses an amount in its written form. Spaces and currency marks
// are dropped; with both separators present the comma groups thousands,
// otherwise a comma is the decimal mark. Unparseable input is zero.
func AmountValue(s string) decimal.Decimal {
	clean := nonNumeric.ReplaceAllString(s, "")
	if strings.Contains(clean, ",") && strings.Contains(clean, ".") {
		clean = strings.ReplaceAll(clean, ",", "")
	} else {
		clean = strings.ReplaceAll(clean, ",", ".")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// sortByValue orders amounts ascending by value; equal values keep their order.
func sortByValue(amounts []string) []string {
	type valued struct {
		text  string
		value decimal.Decimal
	}
	vs := make([]valued, len(amounts))
	for i, a := range amounts {
		vs[i] = valued{a, AmountValue(a)}
	}
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].value.LessThan(vs[j].value) })
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.text
	}
	return out
}
