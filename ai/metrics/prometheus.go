// Package metrics provides Prometheus metrics export for the note generation
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exports note generation metrics in Prometheus format.
type Recorder struct {
	registry *prometheus.Registry

	generations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	chatRequests       *prometheus.CounterVec
	llmTokensUsed      *prometheus.CounterVec
}

// Config configures the Prometheus recorder.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewRecorder creates a new Prometheus metrics recorder.
func NewRecorder(cfg Config) *Recorder {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &Recorder{registry: registry}

	r.generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notesgenai",
			Subsystem: "notegen",
			Name:      "generations_total",
			Help:      "Total number of generated notes",
		},
		[]string{"source", "purpose"},
	)

	r.generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notesgenai",
			Subsystem: "notegen",
			Name:      "generation_duration_seconds",
			Help:      "Note generation latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"source"},
	)

	r.chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notesgenai",
			Subsystem: "notegen",
			Name:      "chat_requests_total",
			Help:      "Total number of chat requests",
		},
		[]string{"status"},
	)

	r.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notesgenai",
			Subsystem: "notegen",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"token_type"},
	)

	registry.MustRegister(
		r.generations,
		r.generationDuration,
		r.chatRequests,
		r.llmTokensUsed,
	)

	return r
}

// RecordGeneration records a completed note generation.
// source is "llm" or "fallback"; purpose is the effective purpose tag.
func (r *Recorder) RecordGeneration(source, purpose string, duration time.Duration) {
	r.generations.WithLabelValues(source, purpose).Inc()
	r.generationDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordChatRequest records a chat turn with its outcome status.
func (r *Recorder) RecordChatRequest(status string) {
	r.chatRequests.WithLabelValues(status).Inc()
}

// RecordTokens records LLM token consumption.
func (r *Recorder) RecordTokens(promptTokens, completionTokens int) {
	r.llmTokensUsed.WithLabelValues("prompt").Add(float64(promptTokens))
	r.llmTokensUsed.WithLabelValues("completion").Add(float64(completionTokens))
}

// Handler returns the HTTP handler exposing the metrics endpoint.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
