package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pydocs/pkg/config"
	"github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/integrations"
	pkgio "github.com/matzehuels/pydocs/pkg/io"
	"github.com/matzehuels/pydocs/pkg/observability"
)

// Runner executes modes against a shared fetcher.
type Runner struct {
	Fetcher  integrations.Fetcher
	Config   *config.Config
	Logger   *log.Logger
	Progress integrations.Progress
	Hooks    observability.ExtractHooks
}

// NewRunner creates a runner. A nil config uses config.Default and a nil
// logger discards output. Progress and Hooks default to no-ops and may be
// replaced before Execute.
func NewRunner(f integrations.Fetcher, cfg *config.Config, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Fetcher:  f,
		Config:   cfg,
		Logger:   logger,
		Progress: integrations.NoopProgress{},
		Hooks:    observability.Noop{},
	}
}

// Execute runs opts.Mode and renders its rows.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	extract, ok := Lookup(opts.Mode)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown mode: %s", opts.Mode)
	}

	logger := r.Logger.With("mode", opts.Mode)
	base := integrations.NewClient(r.Fetcher, logger, r.Progress)

	r.Hooks.OnExtractStart(ctx, opts.Mode)
	start := time.Now()
	set, path, err := extract(ctx, base, r.Config)

	result := &Result{
		Mode:     opts.Mode,
		Set:      set,
		FilePath: path,
		Stats: Stats{
			Skipped:  base.Skipped(),
			Duration: time.Since(start),
		},
	}
	if set != nil {
		result.Stats.Rows = set.Len()
	}
	r.Hooks.OnExtractComplete(ctx, opts.Mode, result.Stats.Rows, result.Stats.Skipped, result.Stats.Duration, err)
	if err != nil {
		return nil, err
	}

	logger.Debug("extraction finished",
		"rows", result.Stats.Rows,
		"skipped", result.Stats.Skipped,
		"duration", result.Stats.Duration)

	if set.Empty() {
		return result, nil
	}

	out, err := pkgio.Render(set, pkgio.Options{
		Output:     opts.Output,
		Mode:       opts.Mode,
		ResultsDir: r.Config.ResultsDir(),
		Stdout:     opts.Stdout,
		Now:        opts.Now,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	result.OutputPath = out
	return result, nil
}
