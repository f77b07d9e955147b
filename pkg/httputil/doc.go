// Package httputil fetches documentation pages through a persistent cache.
//
// # Overview
//
//   - [Fetcher]: cached GET returning raw [Response] values or parsed documents
//   - [FetchError]: the single error kind for every retrieval failure
//   - [Retry]: optional exponential backoff for transient failures
//
// # Caching
//
// Successful (200 OK) responses are stored in a [cache.Cache] under
// [cache.HTTPKey]. A second request for the same URL is served from the store
// without touching the network. Other statuses are never stored.
//
//	f := httputil.NewFetcher(store, httputil.Options{Timeout: 30 * time.Second})
//	doc, err := f.Document(ctx, "https://docs.python.org/3/")
//
// [Fetcher.ClearCache] empties the store; `pydocs --clear-cache` and
// `pydocs cache clear` call it.
//
// # Errors
//
// Transport failures, body read failures and statuses of 400 and above are all
// reported as [*FetchError]. Status failures wrap [ErrBadStatus]; URLs refused
// by robots.txt wrap [ErrDisallowed].
package httputil
