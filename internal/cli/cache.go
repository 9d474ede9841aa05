package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Spotify and MusicBrainz response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached API responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == backendNone {
				printInfo("Caching is disabled")
				return nil
			}
			store, err := c.newCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if expiredOnly {
				sq, ok := store.(*cache.SQLiteCache)
				if !ok {
					return fmt.Errorf("--expired is only supported by the %s backend", backendSQLite)
				}
				n, err := sq.Purge(cmd.Context())
				if err != nil {
					return fmt.Errorf("purge cache: %w", err)
				}
				printSuccess("Purged %d expired entries", n)
				return nil
			}

			clr, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Cache is empty")
				return nil
			}
			n, err := clr.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Backend: %s", cfg.Cache.Backend)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove expired entries (sqlite backend)")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch cfg.Cache.Backend {
			case backendRedis:
				fmt.Fprintln(out, "redis://"+cfg.Cache.RedisAddr)
				return nil
			case backendMongo:
				fmt.Fprintln(out, cfg.Cache.MongoURI)
				return nil
			case backendNone:
				printInfo("Caching is disabled")
				return nil
			}
			dir, err := resolveCacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if cfg.Cache.Backend == backendSQLite {
				dir = filepath.Join(dir, sqliteFilename)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
