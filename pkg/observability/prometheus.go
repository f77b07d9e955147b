package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pydocs"

// Prometheus records hook events as Prometheus metrics.
type Prometheus struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	httpErrors  *prometheus.CounterVec
	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter
	rows        *prometheus.CounterVec
	skipped     *prometheus.CounterVec
	runs        *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_total",
			Help:      "HTTP responses by host and status code.",
		}, []string{"host", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of uncached HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Transport-level HTTP failures.",
		}, []string{"host"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the response cache.",
		}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extract_rows_total",
			Help:      "Data rows produced per mode.",
		}, []string{"mode"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extract_skipped_total",
			Help:      "Items skipped after a per-item failure.",
		}, []string{"mode"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extract_runs_total",
			Help:      "Extractor runs by mode and outcome.",
		}, []string{"mode", "outcome"}),
	}
	reg.MustRegister(p.requests, p.duration, p.httpErrors, p.cacheEvents, p.cacheBytes, p.rows, p.skipped, p.runs)
	return p
}

func (p *Prometheus) OnExtractStart(context.Context, string) {}

func (p *Prometheus) OnExtractComplete(_ context.Context, mode string, rows, skipped int, _ time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.runs.WithLabelValues(mode, outcome).Inc()
	p.rows.WithLabelValues(mode).Add(float64(rows))
	p.skipped.WithLabelValues(mode).Add(float64(skipped))
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, _, host, _ string, statusCode int, d time.Duration) {
	p.requests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	p.duration.WithLabelValues(host).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, _, host, _ string, _ error) {
	p.httpErrors.WithLabelValues(host).Inc()
}

var _ Hooks = (*Prometheus)(nil)
