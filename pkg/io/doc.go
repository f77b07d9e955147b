// Package io renders result sets.
//
// # Outputs
//
//   - default: one line per row, values separated by spaces, on stdout
//   - pretty: an aligned, left-justified table with the header as titles
//   - file: a CSV file results/<mode>_<YYYY-MM-DD_HH-MM-SS>.csv
//   - markdown: a GitHub-flavored markdown table on stdout
//
// Unknown output names fall back to the default.
//
// # Usage
//
//	path, err := io.Render(set, io.Options{Output: io.OutputFile, Mode: "pep", ResultsDir: "results"})
package io
