// Package pkg provides the libraries behind the pydocs command.
//
// # Overview
//
// pydocs crawls docs.python.org and peps.python.org and turns what it finds
// into small tables. The packages are organized as:
//
//  1. [httputil] - cached, robots-aware page fetching
//  2. [htmltree] - element lookup over parsed HTML
//  3. [integrations] - per-site extractors (pydocs, peps)
//  4. [pipeline] - mode registry and execution
//  5. [io] - rendering result sets to stdout or CSV files
//
// Supporting packages: [cache], [config], [errors], [observability] and
// [results].
//
// # Data Flow
//
//	mode name
//	    ↓
//	[pipeline] Runner.Execute
//	    ↓
//	[integrations] extractor → [httputil] Fetcher → [cache]
//	    ↓
//	[results] Set
//	    ↓
//	[io] Render
package pkg
