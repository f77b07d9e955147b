package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/pydocs/pkg/cache"
	"github.com/matzehuels/pydocs/pkg/config"
	"github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/httputil"
	"github.com/matzehuels/pydocs/pkg/observability"
	"github.com/matzehuels/pydocs/pkg/pipeline"
)

// runOptions holds the root command's flags.
type runOptions struct {
	mode        string
	output      string
	clearCache  bool
	configPath  string
	metricsFile string
}

// run executes one mode. Failures are logged here and returned wrapped in
// ErrReported.
func (c *CLI) run(ctx context.Context, stdout io.Writer, opts runOptions) error {
	logger := c.Logger.With("run", uuid.NewString()[:8])

	cfg, err := c.loadConfig(opts.configPath)
	if err != nil {
		return c.fail(logger, err)
	}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return c.fail(logger, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open log file"))
		}
		defer f.Close()
		logger = logger.With() // copy; c.Logger keeps its own output
		logger.SetOutput(io.MultiWriter(c.logOut, f))
	}
	ctx = withLogger(ctx, logger)

	sw := newStopwatch(logger)
	logger.Info("Parser started")
	logger.Debug("Command line arguments",
		"mode", opts.mode,
		"output", opts.output,
		"clear_cache", opts.clearCache)
	if logger.GetLevel() <= log.DebugLevel {
		logger.Debug("Configuration\n" + spew.Sdump(cfg))
	}

	if err := c.execute(ctx, stdout, cfg, opts); err != nil {
		return c.fail(logger, err)
	}

	sw.done("Parser finished")
	return nil
}

func (c *CLI) fail(logger *log.Logger, err error) error {
	logger.Errorf("An error occurred: %s", errors.UserMessage(err))
	return fmt.Errorf("%w: %w", ErrReported, err)
}

func (c *CLI) execute(ctx context.Context, stdout io.Writer, cfg *config.Config, opts runOptions) error {
	logger := loggerFromContext(ctx)

	var (
		hooks observability.Hooks = observability.Noop{}
		reg   *prometheus.Registry
	)
	if opts.metricsFile != "" {
		reg = prometheus.NewRegistry()
		hooks = observability.NewPrometheus(reg)
		defer func() {
			if werr := writeMetrics(opts.metricsFile, reg); werr != nil {
				logger.Warn("Could not write metrics", "path", opts.metricsFile, "err", werr)
			}
		}()
	}

	store, err := cache.Open(cacheOptions(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	fetcher := httputil.NewFetcher(store, httputil.Options{
		Timeout:       cfg.HTTP.Timeout,
		UserAgent:     cfg.HTTP.UserAgent,
		TTL:           cfg.Cache.TTL,
		Retries:       cfg.HTTP.Retries,
		RespectRobots: cfg.HTTP.RespectRobots,
		Logger:        logger,
		HTTPHooks:     hooks,
		CacheHooks:    hooks,
	})

	if opts.clearCache {
		if err := fetcher.ClearCache(ctx); err != nil {
			return errors.Wrap(errors.ErrCodeCache, err, "clear cache")
		}
		logger.Info("Cache cleared")
	}

	runner := pipeline.NewRunner(fetcher, cfg, logger)
	runner.Hooks = hooks
	progress := newProgress(c.logOut)
	runner.Progress = progress
	defer progress.Close()

	_, err = runner.Execute(ctx, pipeline.Options{
		Mode:   opts.mode,
		Output: opts.output,
		Stdout: stdout,
	})
	return err
}

// loadConfig loads the config file at path, or the discovered one.
func (c *CLI) loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeMetrics(path string, reg *prometheus.Registry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, reg)
}
