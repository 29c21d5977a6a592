package util

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	in := "Le 12.03.2024, achat de 1 500,50 FCFA. Paiement par chèque! Quel est le solde ?"
	got := SplitSentences(in)
	want := []string{
		"Le 12.03.2024, achat de 1 500,50 FCFA.",
		"Paiement par chèque!",
		"Quel est le solde ?",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	if got := SplitSentences("   "); len(got) != 0 {
		t.Fatalf("expected no sentences, got %q", got)
	}
}

func TestSnippet(t *testing.T) {
	in := "Hello\x00   world \n\t again"
	if out := Snippet(in, 100); out != "Hello world again" {
		t.Fatalf("unexpected snippet: %q", out)
	}
	long := strings.Repeat("a", 50)
	if out := Snippet(long, 10); out != strings.Repeat("a", 10)+"..." {
		t.Fatalf("unexpected truncated snippet: %q", out)
	}
}
