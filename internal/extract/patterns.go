package extract

import "regexp"

// Pattern is one surface-form matcher. Intent documents what the expression
// targets so patterns can be added or dropped without touching call sites.
type Pattern struct {
	Intent string
	re     *regexp.Regexp
}

func newPattern(intent, expr string) Pattern {
	return Pattern{Intent: intent, re: regexp.MustCompile(expr)}
}

type span struct {
	start, end int
	text       string
}

func (p Pattern) spans(text string) []span {
	idx := p.re.FindAllStringIndex(text, -1)
	out := make([]span, 0, len(idx))
	for _, loc := range idx {
		out = append(out, span{start: loc[0], end: loc[1], text: text[loc[0]:loc[1]]})
	}
	return out
}

// EntityPattern captures the value of a named quantity; group 1 holds the value.
type EntityPattern struct {
	Name string
	re   *regexp.Regexp
}

func newEntityPattern(name, expr string) EntityPattern {
	return EntityPattern{Name: name, re: regexp.MustCompile(expr)}
}

// Thousands groups may be separated by a plain, no-break or narrow no-break space.
const (
	groupSep   = `[ \x{00A0}\x{202F}]`
	amountCore = `\d{1,3}(?:` + groupSep + `\d{3})*(?:,\d{2})?`
)

// Named quantities.
const (
	EntityCapital = "capital"
	EntityLoan    = "emprunt"
	EntityStock   = "stock"
	EntityVAT     = "tva"
)

// AccountPatterns: five-digit codes of the OHADA numbering plan.
func AccountPatterns() []Pattern {
	return []Pattern{
		newPattern("five-digit account code", `\b\d{5}\b`),
	}
}

func AmountPatterns() []Pattern {
	return []Pattern{
		newPattern("grouped thousands, decimal comma, optional euro suffix (1 234,56 €)",
			`\b\d{1,3}(?:`+groupSep+`\d{3})*(?:,\d{1,2})?(?: ?€| ?EUR)?\b`),
		newPattern("comma thousands, decimal point (1,234.56)",
			`\b\d{1,3}(?:,\d{3})*\.\d{2}\b`),
		newPattern("grouped integer, optional euro suffix (1 234€)",
			`\b\d{1,3}(?:`+groupSep+`\d{3})*(?:€|EUR)?\b`),
	}
}

func DatePatterns() []Pattern {
	return []Pattern{
		newPattern("day/month/year (31/12/2024)", `\b\d{2}/\d{2}/\d{4}\b`),
		newPattern("dash or dot short form (1-3-24, 31.12.2024)", `\b\d{1,2}[-.]\d{1,2}[-.]\d{2,4}\b`),
		newPattern("spelled month (15 mars 2024)",
			`(?i)\b\d{1,2} (?:janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre) \d{4}\b`),
	}
}

// TransactionPatterns anchor an accounting verb or document noun to a code or
// amount inside the same clause (no newline or full stop in between).
func TransactionPatterns() []Pattern {
	return []Pattern{
		newPattern("verb then account then amount",
			`(?i)(?:débit|crédit|enregistr(?:er|ement)|comptabilis(?:er|ation))[^\n.]*\d{5}[^\n.]*`+amountCore+`\b`),
		newPattern("account then debit/credit then amount",
			`(?i)\b\d{5}\b[^\n.]*(?:débit(?:é|er)?|crédit(?:é|er)?)[^\n.]*\b`+amountCore+`\b`),
		newPattern("document noun then amount",
			`(?i)(?:facture|paiement|règlement|versement|achat|vente)[^\n.]*\b`+amountCore+`\b`),
	}
}

func DefaultKeywords() []string {
	return []string{
		"capital", "emprunt", "stock", "amortissement", "immobilisation",
		"créance", "dette", "tva", "trésorerie", "bilan", "compte de résultat",
		"actif", "passif", "produit", "charge", "résultat", "exercice", "dividende",
	}
}

func EntityPatterns() []EntityPattern {
	return []EntityPattern{
		newEntityPattern(EntityCapital, `(?i)capital[^\n.]*?(`+amountCore+`)`),
		newEntityPattern(EntityLoan, `(?i)emprunt[^\n.]*?(`+amountCore+`)`),
		newEntityPattern(EntityStock, `(?i)stock[^\n.]*?(`+amountCore+`)`),
		newEntityPattern(EntityVAT, `(?i)tva[^\n.]*?(`+amountCore+`)`),
	}
}
