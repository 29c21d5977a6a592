package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"écriture", "60100"}, Words("L'Écriture: 60100 à x"))
}

func TestTermsDropStopWordsBeforeNGrams(t *testing.T) {
	v := NewLexicalVectorizer()
	assert.Equal(t, []string{"compte", "société", "compte société"}, v.terms("le compte de la société"))
}

func TestFitTransformSmoothedIDF(t *testing.T) {
	v := Vectorizer{MinN: 1, MaxN: 2}
	vecs := v.FitTransform([]string{"achat marchandises", "achat"})
	require.Len(t, vecs, 2)

	rare := math.Log(1.5) + 1
	want := 1 / math.Sqrt(1+2*rare*rare)
	assert.InDelta(t, want, Cosine(vecs[0], vecs[1]), 1e-9)
	assert.InDelta(t, 1.0, Cosine(vecs[0], vecs[0]), 1e-9)
}

func TestFitTransformDegenerate(t *testing.T) {
	vecs := NewLexicalVectorizer().FitTransform([]string{"", "de la à"})
	require.Len(t, vecs, 2)
	assert.Empty(t, vecs[0])
	assert.Empty(t, vecs[1])
	assert.Zero(t, Cosine(vecs[0], vecs[1]))
}

func TestMaxFeaturesKeepsMostFrequent(t *testing.T) {
	v := Vectorizer{MinN: 1, MaxN: 1, MaxFeatures: 1}
	vecs := v.FitTransform([]string{"tva tva achat"})
	assert.Len(t, vecs[0], 1)
}
