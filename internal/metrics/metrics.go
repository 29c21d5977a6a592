// Package metrics holds the Prometheus collectors for the resolver and the
// example corpus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "exsolver"

// Resolution outcomes.
const (
	OutcomeResolved        = "resolved"
	OutcomeNoExamples      = "no_examples"
	OutcomeNoMatch         = "no_match"
	OutcomeAdaptationError = "adaptation_error"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
//
// Metrics:
//   - exsolver_resolver_resolutions_total{outcome}
//   - exsolver_resolver_confidence
//   - exsolver_resolver_rank_duration_seconds
//   - exsolver_corpus_examples
//   - exsolver_corpus_reloads_total{status}
//   - exsolver_corpus_skipped_documents_total
type Metrics struct {
	ResolutionsTotal *prometheus.CounterVec
	Confidence       prometheus.Histogram
	RankDuration     prometheus.Histogram

	CorpusExamples  prometheus.Gauge
	ReloadsTotal    *prometheus.CounterVec
	SkippedDocTotal prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// binaries and prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ResolutionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Resolution attempts by outcome.",
		}, []string{"outcome"}),
		Confidence: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "confidence",
			Help:      "Confidence of resolved exercises.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		RankDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "rank_duration_seconds",
			Help:      "Time spent ranking corpus examples for one problem.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		CorpusExamples: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "examples",
			Help:      "Examples in the published corpus snapshot.",
		}),
		ReloadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "reloads_total",
			Help:      "Corpus loads by status (ok, error).",
		}, []string{"status"}),
		SkippedDocTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "skipped_documents_total",
			Help:      "Documents skipped because they failed to decode or split.",
		}),
	}
}

func (m *Metrics) ObserveResolution(outcome string, confidence float64) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeResolved {
		m.Confidence.Observe(confidence)
	}
}

func (m *Metrics) ObserveRank(d time.Duration) {
	if m == nil {
		return
	}
	m.RankDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveReload(examples int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	m.ReloadsTotal.WithLabelValues("ok").Inc()
	m.CorpusExamples.Set(float64(examples))
}

func (m *Metrics) IncSkippedDocument() {
	if m == nil {
		return
	}
	m.SkippedDocTotal.Inc()
}
