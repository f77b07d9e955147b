// Package pipeline runs one extraction mode and hands its rows to the sink.
//
// The CLI selects a mode by name; [Runner.Execute] builds the extractor for
// that mode on top of the shared fetcher, runs it, reports the run to the
// extract hooks and renders the result set with pkg/io. Modes that produce a
// file instead of rows (download) skip the sink.
//
// # Usage
//
//	runner := pipeline.NewRunner(fetcher, cfg, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Mode: pipeline.ModePEP, Output: "pretty"})
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/pydocs/pkg/config"
	"github.com/matzehuels/pydocs/pkg/integrations"
	"github.com/matzehuels/pydocs/pkg/integrations/peps"
	"github.com/matzehuels/pydocs/pkg/integrations/pydocs"
	"github.com/matzehuels/pydocs/pkg/results"
)

// Mode names accepted on the command line.
const (
	ModeWhatsNew       = "whats-new"
	ModeLatestVersions = "latest-versions"
	ModeDownload       = "download"
	ModePEP            = "pep"
)

// ExtractFunc runs one mode. It returns either a result set or, for modes
// with a file side effect, the written path.
type ExtractFunc func(ctx context.Context, base *integrations.Client, cfg *config.Config) (*results.Set, string, error)

type mode struct {
	name    string
	extract ExtractFunc
}

var modes = []mode{
	{ModeWhatsNew, func(ctx context.Context, base *integrations.Client, cfg *config.Config) (*results.Set, string, error) {
		set, err := pydocs.NewClient(base, cfg.URLs.Docs).WhatsNew(ctx)
		return set, "", err
	}},
	{ModeLatestVersions, func(ctx context.Context, base *integrations.Client, cfg *config.Config) (*results.Set, string, error) {
		set, err := pydocs.NewClient(base, cfg.URLs.Docs).LatestVersions(ctx)
		return set, "", err
	}},
	{ModeDownload, func(ctx context.Context, base *integrations.Client, cfg *config.Config) (*results.Set, string, error) {
		path, err := pydocs.NewClient(base, cfg.URLs.Docs).Download(ctx, cfg.DownloadsDir())
		return nil, path, err
	}},
	{ModePEP, func(ctx context.Context, base *integrations.Client, cfg *config.Config) (*results.Set, string, error) {
		set, err := peps.NewClient(base, cfg.URLs.PEPs).StatusTally(ctx)
		return set, "", err
	}},
}

// Modes returns the mode names in display order.
func Modes() []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.name
	}
	return names
}

// Lookup returns the extractor for name.
func Lookup(name string) (ExtractFunc, bool) {
	for _, m := range modes {
		if m.name == name {
			return m.extract, true
		}
	}
	return nil, false
}

// Options selects the mode and output of one run.
type Options struct {
	Mode   string
	Output string    // see pkg/io output names
	Stdout io.Writer // nil means os.Stdout
	Now    func() time.Time
}

// Result describes a finished run.
type Result struct {
	Mode       string
	Set        *results.Set // nil for modes without rows
	FilePath   string       // downloaded archive, for download
	OutputPath string       // CSV file, for file output
	Stats      Stats
}

// Stats summarizes a run.
type Stats struct {
	Rows     int
	Skipped  int
	Duration time.Duration
}
