// Package pydocs extracts facts from the Python documentation site.
//
// # Overview
//
// [Client] visits pages under a documentation root such as
// https://docs.python.org/3/:
//
//   - [Client.WhatsNew]: one row per "What's New" article (link, title, authors)
//   - [Client.LatestVersions]: one row per entry of the sidebar version list
//   - [Client.Download]: saves the A4 PDF archive to a local directory
//
// # Usage
//
//	docs := pydocs.NewClient(base, "https://docs.python.org/3/")
//	set, err := docs.WhatsNew(ctx)
//
// WhatsNew fetches one page per article. An article that fails to load or
// lacks the expected elements is logged and skipped; the others are returned.
package pydocs
