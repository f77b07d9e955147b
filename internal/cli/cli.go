// Package cli implements the pydocs command-line interface.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pydocs/pkg/buildinfo"
	pkgio "github.com/matzehuels/pydocs/pkg/io"
	"github.com/matzehuels/pydocs/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pydocs"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrReported marks a run failure that has already been logged.
// main exits non-zero without printing it again.
var ErrReported = errors.New("run failed")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	logOut io.Writer
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var opts runOptions

	root := &cobra.Command{
		Use:   "pydocs <mode>",
		Short: "pydocs extracts facts from the Python documentation and PEP index",
		Long: `pydocs crawls docs.python.org and peps.python.org and prints what it finds.

Modes:
  whats-new        What's New articles with titles and authors
  latest-versions  documentation versions and their status
  download         save the A4 PDF documentation archive
  pep              count PEPs by status`,
		Version:       buildinfo.Get().Version,
		ValidArgs:     pipeline.Modes(),
		Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.mode = args[0]
			return c.run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().BoolVarP(&opts.clearCache, "clear-cache", "c", false, "clear the response cache before running")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "output format: pretty, file or markdown")
	root.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (TOML or YAML)")

	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pkgio.Outputs(), cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(c.cacheCommand(&opts.configPath))
	root.AddCommand(c.completionCommand())

	return root
}
