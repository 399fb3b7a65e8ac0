// Package metrics provides Prometheus metrics for the brief pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stage labels for pipeline failures.
const (
	StageFetch     = "fetch"
	StageSave      = "save"
	StageLoad      = "load"
	StageSummarize = "summarize"
	StageWrite     = "write"
)

// Metrics holds the pipeline metric collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	articlesFetched  prometheus.Counter
	briefsGenerated  prometheus.Counter
	briefFailures    *prometheus.CounterVec
	summarizerTiming prometheus.Histogram
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		articlesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsbrief_articles_fetched_total",
			Help: "Number of articles fetched from the news feed.",
		}),
		briefsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsbrief_briefs_generated_total",
			Help: "Number of daily briefs successfully generated.",
		}),
		briefFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsbrief_brief_failures_total",
			Help: "Number of brief generation failures by pipeline stage.",
		}, []string{"stage"}),
		summarizerTiming: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsbrief_summarizer_request_duration_seconds",
			Help:    "Duration of completion endpoint requests.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}),
	}

	registry.MustRegister(
		m.articlesFetched,
		m.briefsGenerated,
		m.briefFailures,
		m.summarizerTiming,
	)
	return m
}

// AddArticlesFetched records fetched articles.
func (m *Metrics) AddArticlesFetched(n int) {
	if m == nil {
		return
	}
	m.articlesFetched.Add(float64(n))
}

// BriefGenerated records one successful brief.
func (m *Metrics) BriefGenerated() {
	if m == nil {
		return
	}
	m.briefsGenerated.Inc()
}

// BriefFailed records one failure at the given pipeline stage.
func (m *Metrics) BriefFailed(stage string) {
	if m == nil {
		return
	}
	m.briefFailures.WithLabelValues(stage).Inc()
}

// ObserveSummarizerRequest records one completion request duration.
func (m *Metrics) ObserveSummarizerRequest(d time.Duration) {
	if m == nil {
		return
	}
	m.summarizerTiming.Observe(d.Seconds())
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
