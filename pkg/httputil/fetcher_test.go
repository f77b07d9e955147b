package httputil

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/pydocs/pkg/cache"
	pderrors "github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/observability"
)

func newStore(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func countingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetcherCachesOK(t *testing.T) {
	ctx := context.Background()
	srv, hits := countingServer(t, http.StatusOK, "<html><body><h1>Hi</h1></body></html>")
	f := NewFetcher(newStore(t), Options{UserAgent: "pydocs-test"})

	first, err := f.Get(ctx, srv.URL+"/page")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if first.FromCache {
		t.Error("first response should not come from cache")
	}

	second, err := f.Get(ctx, srv.URL+"/page")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if !second.FromCache {
		t.Error("second response should come from cache")
	}
	if string(second.Body) != string(first.Body) {
		t.Errorf("cached body = %q, want %q", second.Body, first.Body)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	if err := f.ClearCache(ctx); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if err := f.ClearCache(ctx); err != nil {
		t.Fatalf("second ClearCache: %v", err)
	}
	if _, err := f.Get(ctx, srv.URL+"/page"); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits after clear = %d, want 2", got)
	}
}

func TestFetcherBadStatus(t *testing.T) {
	ctx := context.Background()
	srv, hits := countingServer(t, http.StatusNotFound, "missing")
	f := NewFetcher(newStore(t), Options{})

	for i := 0; i < 2; i++ {
		_, err := f.Get(ctx, srv.URL)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("Get() error = %v, want *FetchError", err)
		}
		if fe.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d", fe.StatusCode)
		}
		if !errors.Is(err, ErrBadStatus) {
			t.Error("error should wrap ErrBadStatus")
		}
		if pderrors.CodeOf(err) != pderrors.ErrCodeFetchFailed {
			t.Errorf("CodeOf = %v", pderrors.CodeOf(err))
		}
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("non-200 responses must not be cached: hits = %d", got)
	}
}

func TestFetcherConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	f := NewFetcher(nil, Options{Timeout: 2 * time.Second})
	_, err = f.Get(context.Background(), "http://"+addr+"/")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", fe.StatusCode)
	}
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(nil, Options{Retries: 2, RetryDelay: time.Millisecond})
	resp, err := f.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(resp.Body) != "ok" || hits.Load() != 3 {
		t.Errorf("body = %q hits = %d", resp.Body, hits.Load())
	}
}

func TestFetcherNoRetryByDefault(t *testing.T) {
	srv, hits := countingServer(t, http.StatusBadGateway, "")
	f := NewFetcher(nil, Options{})
	if _, err := f.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error")
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestFetcherDocument(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `<html><body><h1>Título</h1></body></html>`)
	f := NewFetcher(nil, Options{})
	doc, err := f.Document(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	h1, err := doc.Find("h1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if h1.Text() != "Título" {
		t.Errorf("h1 = %q", h1.Text())
	}
}

func TestFetcherRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(nil, Options{RespectRobots: true, UserAgent: "pydocs"})
	if _, err := f.Get(context.Background(), srv.URL+"/public/"); err != nil {
		t.Errorf("allowed path: %v", err)
	}
	_, err := f.Get(context.Background(), srv.URL+"/private/x")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("disallowed path error = %v, want ErrDisallowed", err)
	}
}

func TestFetcherHooks(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, "ok")
	reg := prometheus.NewRegistry()
	hooks := observability.NewPrometheus(reg)
	f := NewFetcher(newStore(t), Options{HTTPHooks: hooks, CacheHooks: hooks})

	for i := 0; i < 3; i++ {
		if _, err := f.Get(context.Background(), srv.URL); err != nil {
			t.Fatal(err)
		}
	}

	n, err := testutil.GatherAndCount(reg, "pydocs_cache_events_total")
	if err != nil {
		t.Fatal(err)
	}
	// hit, miss and set series
	if n != 3 {
		t.Errorf("cache event series = %d, want 3", n)
	}
}
