package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Business outcome labels.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics are the counters of one summarization run.
type Metrics struct {
	Registry *prometheus.Registry

	Businesses *prometheus.CounterVec
	Sentences  prometheus.Counter
	Duration   prometheus.Histogram
}

// NewMetrics registers the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Businesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "aspectsum", Name: "businesses_total", Help: "Businesses summarized."},
			[]string{"status"}, // status: ok|failed
		),
		Sentences: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: "aspectsum", Name: "sentences_total", Help: "Sentences analyzed."},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "aspectsum", Name: "summary_duration_seconds",
				Help:    "Per-business summarization duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	m.Registry.MustRegister(m.Businesses, m.Sentences, m.Duration)
	return m
}

// ObserveBusiness records one finished business.
func (m *Metrics) ObserveBusiness(failed bool, sentences int, dur time.Duration) {
	status := StatusOK
	if failed {
		status = StatusFailed
	}
	m.Businesses.WithLabelValues(status).Inc()
	m.Sentences.Add(float64(sentences))
	m.Duration.Observe(dur.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done. An empty addr disables it.
func (m *Metrics) Serve(ctx context.Context, addr string, logger zerolog.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
