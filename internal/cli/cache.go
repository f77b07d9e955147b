package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pydocs/pkg/cache"
	"github.com/matzehuels/pydocs/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
	}

	cmd.AddCommand(c.cacheClearCommand(configPath))
	cmd.AddCommand(c.cachePathCommand(configPath))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := cache.Open(cacheOptions(cfg))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Cache cleared")
			if loc := cache.Location(cacheOptions(cfg)); loc != "" {
				printFile(out, loc)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(*configPath)
			if err != nil {
				return err
			}
			loc := cache.Location(cacheOptions(cfg))
			if loc == "" {
				printInfo(cmd.OutOrStdout(), "Caching is disabled (backend %q)", cfg.Cache.Backend)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}
}

func cacheOptions(cfg *config.Config) cache.Options {
	return cache.Options{
		Backend:  cfg.Cache.Backend,
		Dir:      cfg.Cache.Dir,
		RedisURL: cfg.Cache.RedisURL,
	}
}
