package similarity

import (
	"math"
	"sort"
	"strings"

	"exsolver/internal/util"
)

// Vector is a sparse, L2-normalized term weight vector keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer fits TF-IDF weights over a document set: word n-grams of
// MinN..MaxN tokens of two or more letters, stop words dropped before n-gram
// formation, smoothed idf ln((1+n)/(1+df))+1, raw term counts.
type Vectorizer struct {
	MinN, MaxN  int
	MaxFeatures int // most frequent terms kept; 0 keeps all
	StopWords   map[string]struct{}
}

// NewLexicalVectorizer is the vectorizer used to compare problem statements.
func NewLexicalVectorizer() Vectorizer {
	return Vectorizer{MinN: 1, MaxN: 3, MaxFeatures: 5000, StopWords: frenchStopWords}
}

// NewContextVectorizer compares the short windows around account codes.
func NewContextVectorizer() Vectorizer {
	return Vectorizer{MinN: 1, MaxN: 1, MaxFeatures: 100}
}

// Words lowercases s and returns its runs of word runes at least two runes long.
func Words(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !util.IsWordRune(r) })
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

func (v Vectorizer) terms(doc string) []string {
	words := Words(doc)
	if len(v.StopWords) > 0 {
		kept := words[:0]
		for _, w := range words {
			if _, stop := v.StopWords[w]; !stop {
				kept = append(kept, w)
			}
		}
		words = kept
	}
	minN, maxN := max(v.MinN, 1), max(v.MaxN, 1)
	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

// FitTransform learns the vocabulary of docs and returns one vector per doc.
// When no document has a usable term every vector is empty.
func (v Vectorizer) FitTransform(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	total := make(map[string]int)
	df := make(map[string]int)
	for i, d := range docs {
		tf := make(map[string]int)
		for _, t := range v.terms(d) {
			tf[t]++
			total[t]++
		}
		for t := range tf {
			df[t]++
		}
		counts[i] = tf
	}

	vocab := v.vocabulary(total)
	n := float64(len(docs))
	idf := make(map[int]float64, len(vocab))
	for t, idx := range vocab {
		idf[idx] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	out := make([]Vector, len(docs))
	for i, tf := range counts {
		vec := make(Vector, len(tf))
		for t, c := range tf {
			if idx, ok := vocab[t]; ok {
				vec[idx] = float64(c) * idf[idx]
			}
		}
		normalize(vec)
		out[i] = vec
	}
	return out
}

// vocabulary keeps the MaxFeatures most frequent terms, ties broken by term,
// and indexes them in lexical order.
func (v Vectorizer) vocabulary(total map[string]int) map[string]int {
	terms := make([]string, 0, len(total))
	for t := range total {
		terms = append(terms, t)
	}
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

func normalize(vec Vector) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for k := range vec {
		vec[k] /= norm
	}
}

// Cosine returns the cosine of two vectors, 0 when either is empty.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, na, nb float64
	for k, x := range a {
		dot += x * b[k]
		na += x * x
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
