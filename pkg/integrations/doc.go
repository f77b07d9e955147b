// Package integrations provides the shared base for page extractors.
//
// # Overview
//
// Each documentation site has its own subpackage:
//
//   - [pydocs]: docs.python.org (what's new, version list, PDF download)
//   - [peps]: peps.python.org (status tally over the numerical index)
//
// # Client Pattern
//
// All extractors embed [Client], which carries the fetcher, logger and
// progress reporter:
//
//	base := integrations.NewClient(fetcher, logger, integrations.NoopProgress{})
//	docs := pydocs.NewClient(base, "https://docs.python.org/3/")
//	set, err := docs.LatestVersions(ctx)
//
// # Failure Isolation
//
// Extractors that visit one page per item decide with [Skippable] whether an
// item's error is a per-item failure (recorded in [Failures] and skipped) or
// fatal for the whole run. Recorded failures are logged together after the
// loop, and the rows that did succeed are still returned.
package integrations
