package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pydocs/pkg/cache"
	pderrors "github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/observability"
)

var (
	// ErrBadStatus is wrapped by a FetchError for responses with status >= 400.
	ErrBadStatus = errors.New("unexpected status")

	// ErrDisallowed is wrapped by a FetchError for URLs refused by robots.txt.
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// FetchError is a classified retrieval failure for one URL.
type FetchError struct {
	URL        string
	StatusCode int // zero for transport failures
	Cause      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Code implements errors.Coder.
func (e *FetchError) Code() pderrors.Code { return pderrors.ErrCodeFetchFailed }

// Response is a fetched page. It is also the cached representation.
type Response struct {
	URL        string      `json:"url"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
	FetchedAt  time.Time   `json:"fetched_at"`
	FromCache  bool        `json:"-"`
}

// Options configures a Fetcher. Zero values select defaults.
type Options struct {
	Timeout       time.Duration
	UserAgent     string
	TTL           time.Duration // cache entry lifetime; zero keeps entries forever
	Retries       int           // extra attempts for transient failures
	RetryDelay    time.Duration // initial backoff; doubles per attempt
	RespectRobots bool
	Transport     http.RoundTripper
	Logger        *log.Logger
	HTTPHooks     observability.HTTPHooks
	CacheHooks    observability.CacheHooks
}

// Fetcher performs cached GET requests.
type Fetcher struct {
	http   *http.Client
	cache  cache.Cache
	opts   Options
	logger *log.Logger
	robots *robotsGuard
}

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = time.Second
	cacheKeyType      = "http"
)

// NewFetcher creates a Fetcher backed by c. A nil cache disables caching.
func NewFetcher(c cache.Cache, opts Options) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.HTTPHooks == nil {
		opts.HTTPHooks = observability.Noop{}
	}
	if opts.CacheHooks == nil {
		opts.CacheHooks = observability.Noop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	f := &Fetcher{
		http:   &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		cache:  c,
		opts:   opts,
		logger: logger,
	}
	if opts.RespectRobots {
		f.robots = newRobotsGuard(f.http, opts.UserAgent)
	}
	return f
}

// Get returns the response for rawURL, from the cache when possible.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Response, error) {
	key := cache.HTTPKey(http.MethodGet, rawURL)

	if data, ok, err := f.cache.Get(ctx, key); err != nil {
		f.logger.Warn("cache read failed", "url", rawURL, "error", err)
	} else if ok {
		var resp Response
		if err := json.Unmarshal(data, &resp); err == nil {
			f.opts.CacheHooks.OnCacheHit(ctx, cacheKeyType)
			f.logger.Debug("cache hit", "url", rawURL)
			resp.FromCache = true
			return &resp, nil
		}
		_ = f.cache.Delete(ctx, key)
	}
	f.opts.CacheHooks.OnCacheMiss(ctx, cacheKeyType)

	if f.robots != nil {
		if err := f.robots.check(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	var resp *Response
	err := Retry(ctx, f.opts.Retries+1, f.opts.RetryDelay, func() error {
		var err error
		resp, err = f.do(ctx, rawURL)
		return err
	})
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{URL: rawURL, Cause: err}
	}

	if resp.StatusCode == http.StatusOK {
		if data, err := json.Marshal(resp); err == nil {
			if err := f.cache.Set(ctx, key, data, f.opts.TTL); err != nil {
				f.logger.Warn("cache write failed", "url", rawURL, "error", err)
			} else {
				f.opts.CacheHooks.OnCacheSet(ctx, cacheKeyType, len(data))
			}
		}
	}
	return resp, nil
}

// Document fetches rawURL and parses the body as HTML.
func (f *Fetcher) Document(ctx context.Context, rawURL string) (*htmltree.Node, error) {
	resp, err := f.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := htmltree.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Cause: err}
	}
	return doc, nil
}

// ClearCache removes every stored response. Clearing an empty cache is a no-op.
func (f *Fetcher) ClearCache(ctx context.Context) error {
	return f.cache.Clear(ctx)
}

func (f *Fetcher) do(ctx context.Context, rawURL string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Cause: err}
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	f.opts.HTTPHooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := f.http.Do(req)
	if err != nil {
		f.opts.HTTPHooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, retryable(ctx, &FetchError{URL: rawURL, Cause: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.opts.HTTPHooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, retryable(ctx, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Cause: err})
	}
	f.opts.HTTPHooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))
	f.logger.Debug("fetched", "url", rawURL, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= 400 {
		fe := &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("%w: %d %s", ErrBadStatus, resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, &RetryableError{Err: fe}
		}
		return nil, fe
	}

	return &Response{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// retryable marks transport failures as transient unless the caller gave up.
func retryable(ctx context.Context, fe *FetchError) error {
	if ctx.Err() != nil {
		return fe
	}
	return &RetryableError{Err: fe}
}
