package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNoFacts(t *testing.T) {
	d := Extract("Quelle est la différence entre un actif et un passif ?")
	assert.Empty(t, d.Accounts)
	assert.Empty(t, d.Amounts)
	assert.Empty(t, d.Dates)
	assert.Equal(t, []string{"actif", "passif"}, d.Keywords)
	assert.False(t, d.Empty())
}

func TestExtractPurchaseOnCredit(t *testing.T) {
	d := Extract("Achat de marchandises à crédit pour 150 000 FCFA (HT), TVA 19,25%")

	assert.Equal(t, []string{"150 000", "19,25"}, d.Amounts)
	assert.Equal(t, "19,25", d.Entities[EntityVAT])
	assert.Contains(t, d.Keywords, "tva")
	require.Len(t, d.Transactions, 1)
	assert.Contains(t, d.Transactions[0], "150 000")
	assert.Empty(t, d.Accounts)
}

func TestExtractJournalLine(t *testing.T) {
	text := "Le 15/03/2024, l'entreprise achète des marchandises pour 1 250 000 FCFA. " +
		"Débit du compte 60100 pour 1 250 000, crédit du compte 40100."
	d := Extract(text)

	assert.Equal(t, []string{"60100", "40100"}, d.Accounts)
	assert.Equal(t, []string{"15/03/2024"}, d.Dates)
	assert.Equal(t, []string{"1 250 000"}, d.Amounts)
	require.Len(t, d.Transactions, 1)
	assert.Contains(t, d.Transactions[0], "60100")
	assert.Equal(t, text, d.Source)
}

func TestExtractKeepsRepeatedAccounts(t *testing.T) {
	d := Extract("Le 52100 est débité, puis le 52100 est crédité par le 41100.")
	assert.Equal(t, []string{"52100", "52100", "41100"}, d.Accounts)
}

func TestExtractDates(t *testing.T) {
	d := Extract("Clôture le 31.12.2024 puis inventaire le 15 Mars 2025.")
	assert.Equal(t, []string{"31.12.2024", "15 Mars 2025"}, d.Dates)
	assert.Empty(t, d.Amounts)
}

func TestExtractDecimalPointAmount(t *testing.T) {
	d := Extract("Montant: 1,234.56 USD")
	assert.Equal(t, []string{"1,234.56"}, d.Amounts)
}

func TestExtractEntities(t *testing.T) {
	d := Extract("Capital social de 10 000 000 FCFA. Emprunt bancaire: 5 000 000.")
	assert.Equal(t, "10 000 000", d.Entities[EntityCapital])
	assert.Equal(t, "5 000 000", d.Entities[EntityLoan])
	assert.NotContains(t, d.Entities, EntityStock)
	assert.Equal(t, []string{"capital", "emprunt"}, d.Keywords)
}

func TestExtractNoBreakSpaceGroups(t *testing.T) {
	d := Extract("Total: 2\u00a0500\u00a0000 FCFA")
	assert.Equal(t, []string{"2\u00a0500\u00a0000"}, d.Amounts)
}

func TestPatternsDocumentIntent(t *testing.T) {
	for _, set := range [][]Pattern{AccountPatterns(), AmountPatterns(), DatePatterns(), TransactionPatterns()} {
		for _, p := range set {
			assert.NotEmpty(t, p.Intent)
		}
	}
}

func TestMask(t *testing.T) {
	got := Mask("Le 15/03/2024, débit 60100 pour 1 250 000 et 1,234.56; exercice 2024.", DefaultPlaceholders)
	assert.Equal(t, "Le numdate, débit numaccount pour numamount et numamount; exercice 2024.", got)
	assert.Equal(t, "aucun chiffre", Mask("aucun chiffre", DefaultPlaceholders))
}
