package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/charmbracelet/log"

	pderrors "github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/httputil"
)

// Fetcher is the subset of [httputil.Fetcher] extractors rely on.
type Fetcher interface {
	Get(ctx context.Context, url string) (*httputil.Response, error)
	Document(ctx context.Context, url string) (*htmltree.Node, error)
}

// Progress receives per-item progress from extractor loops.
type Progress interface {
	Start(label string, total int)
	Step()
	Finish()
}

// NoopProgress discards progress updates.
type NoopProgress struct{}

func (NoopProgress) Start(string, int) {}
func (NoopProgress) Step()             {}
func (NoopProgress) Finish()           {}

// Client provides shared functionality for all extractors.
type Client struct {
	Fetcher
	Logger   *log.Logger
	Progress Progress

	skipped int
}

// NewClient creates a Client. Nil logger and progress are replaced with
// discarding implementations.
func NewClient(f Fetcher, logger *log.Logger, progress Progress) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if progress == nil {
		progress = NoopProgress{}
	}
	return &Client{Fetcher: f, Logger: logger, Progress: progress}
}

// Skippable reports whether err is a per-item failure: a fetch failure, a
// missing element or a link that does not parse. Anything else should abort
// the run.
func Skippable(err error) bool {
	var fe *httputil.FetchError
	var tnf *htmltree.TagNotFoundError
	var le *LinkError
	return errors.As(err, &fe) || errors.As(err, &tnf) || errors.As(err, &le)
}

// LinkError reports an href that cannot be resolved to a URL.
type LinkError struct {
	Ref   string
	Cause error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("parse link %q: %v", e.Ref, e.Cause)
}

func (e *LinkError) Unwrap() error { return e.Cause }

// Code implements [pderrors.Coder].
func (e *LinkError) Code() pderrors.Code { return pderrors.ErrCodeInvalidInput }

// Failure is one skipped item, identified by its page URL when known.
type Failure struct {
	Item string
	Err  error
}

// Failures collects per-item errors during a loop.
type Failures struct {
	items []Failure
}

// Record adds a skipped item.
func (f *Failures) Record(item string, err error) {
	f.items = append(f.items, Failure{Item: item, Err: err})
}

// Len is the number of skipped items.
func (f *Failures) Len() int { return len(f.items) }

// Items returns the recorded failures in order.
func (f *Failures) Items() []Failure { return f.items }

// Log writes one error line per recorded failure.
func (f *Failures) Log(logger *log.Logger) {
	for _, item := range f.items {
		logger.Error(fmt.Sprintf("Failed to process %s", item.Item), "error", item.Err)
	}
}

// Report logs the failures of a finished loop and adds them to the
// client's skip count.
func (c *Client) Report(f *Failures) {
	f.Log(c.Logger)
	c.skipped += f.Len()
}

// Skipped is the number of items skipped since the client was created.
func (c *Client) Skipped() int { return c.skipped }

// ResolveURL resolves ref against base, as a browser resolves a link.
func ResolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", &LinkError{Ref: ref, Cause: err}
	}
	return b.ResolveReference(r).String(), nil
}
