// Package observability provides hooks for metrics and event reporting.
//
// Components accept hook interfaces at construction time and call them as
// events happen. The defaults are no-ops; [NewPrometheus] returns an
// implementation backed by Prometheus collectors on a caller-owned registry.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPrometheus(reg)
//	fetcher := httputil.NewFetcher(c, httputil.Options{HTTPHooks: hooks, CacheHooks: hooks})
//	// ... run ...
//	prometheus.WriteToTextfile("metrics.prom", reg)
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Extract Hooks
// =============================================================================

// ExtractHooks receives events from extractor runs.
type ExtractHooks interface {
	OnExtractStart(ctx context.Context, mode string)
	OnExtractComplete(ctx context.Context, mode string, rows, skipped int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// Hooks bundles every hook category, for implementations that cover all of them.
type Hooks interface {
	ExtractHooks
	CacheHooks
	HTTPHooks
}

// =============================================================================
// No-op Implementations
// =============================================================================

// Noop implements every hook interface and discards all events.
type Noop struct{}

func (Noop) OnExtractStart(context.Context, string)                                    {}
func (Noop) OnExtractComplete(context.Context, string, int, int, time.Duration, error) {}
func (Noop) OnCacheHit(context.Context, string)                                        {}
func (Noop) OnCacheMiss(context.Context, string)                                       {}
func (Noop) OnCacheSet(context.Context, string, int)                                   {}
func (Noop) OnRequest(context.Context, string, string, string)                         {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration)    {}
func (Noop) OnError(context.Context, string, string, string, error)                    {}

var _ Hooks = Noop{}
