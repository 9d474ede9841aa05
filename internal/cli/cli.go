// Package cli implements the artistgraph command-line interface.
//
// Every command that needs the graph fetches seed artists from Spotify and
// MusicBrainz, builds it in memory, and then queries, renders, serves or
// browses it. Upstream responses are cached, so repeated runs are fast and
// reproducible. --graph loads a document saved with `render -f json`
// instead, which needs no network access.
//
// # Commands
//
//   - shell: interactive console (the default workflow)
//   - fetch: warm the cache and print graph statistics
//   - neighbors, path, top: one-shot queries
//   - render: write the graph as PNG, SVG, DOT or JSON
//   - browse: terminal artist browser
//   - serve: HTTP API over the graph
//   - cache: manage the response cache
//   - auth: verify Spotify credentials
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/pkg/buildinfo"
	"github.com/matzehuels/artistgraph/pkg/cache"
	apperrors "github.com/matzehuels/artistgraph/pkg/errors"
	"github.com/matzehuels/artistgraph/pkg/fetch"
	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/integrations/musicbrainz"
	"github.com/matzehuels/artistgraph/pkg/integrations/spotify"
	"github.com/matzehuels/artistgraph/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = buildinfo.Name

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	seedsFile  string
	graphFile  string
	noCache    bool
	refresh    bool
	verbose    bool

	// source overrides the fetch step; tests use it to inject a graph.
	source func(ctx context.Context) (*graph.Graph, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Graph Loading
// =============================================================================

// loadGraph fetches the configured seeds and builds the artist graph.
func (c *CLI) loadGraph(ctx context.Context) (*graph.Graph, Config, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, Config{}, err
	}
	if c.source != nil {
		g, err := c.source(ctx)
		return g, cfg, err
	}
	if c.graphFile != "" {
		g, err := graph.ImportDocument(c.graphFile)
		if err != nil {
			return nil, Config{}, apperrors.New(apperrors.ErrCodeInvalidInput, "load graph: %v", err)
		}
		c.Logger.Debug("loaded saved graph", "path", c.graphFile, "artists", g.NodeCount())
		return g, cfg, nil
	}

	seeds := cfg.Seeds
	if c.seedsFile != "" {
		if seeds, err = readSeedsFile(c.seedsFile); err != nil {
			return nil, Config{}, err
		}
	}

	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, Config{}, err
	}
	defer store.Close()

	f, err := c.newFetcher(cfg, store)
	if err != nil {
		return nil, Config{}, err
	}

	if c.verbose {
		hooks := &logHooks{logger: c.Logger}
		observability.SetFetchHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %d artists from Spotify and MusicBrainz...", len(seeds)))
	if !c.verbose {
		observability.SetFetchHooks(&spinnerHooks{spinner: spinner, total: len(seeds)})
		spinner.Start()
	}
	g, res, err := f.Build(ctx, seeds)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return nil, Config{}, fmt.Errorf("fetch artists: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Fetched %d of %d artists", res.Genres.Len(), len(seeds)))
	if len(res.Skipped) > 0 {
		c.Logger.Warn("skipped seeds not found on Spotify", "count", len(res.Skipped))
	}
	return g, cfg, nil
}

// newFetcher wires the Spotify and MusicBrainz clients into a fetcher.
func (c *CLI) newFetcher(cfg Config, store cache.Cache) (*fetch.Fetcher, error) {
	ttl, err := cfg.cacheTTL()
	if err != nil {
		return nil, err
	}

	sp := spotify.NewClient(store, ttl, spotify.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
	})

	ua := cfg.MusicBrainz.UserAgent
	if ua == "" {
		ua = musicbrainz.UserAgent(buildinfo.Name, buildinfo.Version, cfg.MusicBrainz.Contact)
	}
	mb := musicbrainz.NewClient(store, ttl, musicbrainz.Options{
		UserAgent:      ua,
		RecordingLimit: cfg.MusicBrainz.RecordingLimit,
	})

	return fetch.New(
		fetch.SpotifyGenres{Client: sp, Refresh: c.refresh},
		fetch.MusicBrainzCredits{Client: mb, Refresh: c.refresh},
		c.Logger,
	), nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured cache backend. --no-cache selects the null cache.
func (c *CLI) newCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   appName + ":",
		})
	case backendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.Cache.MongoURI,
			Database: cfg.Cache.MongoDatabase,
		})
	}

	dir, err := resolveCacheDir(cfg)
	if err != nil {
		c.Logger.Warn("cache directory unavailable, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == backendSQLite {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		return cache.OpenSQLiteCache(filepath.Join(dir, sqliteFilename))
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns cache.dir from the config or the XDG default.
func resolveCacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/artistgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/artistgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// graphCommand wraps run so it receives a freshly built graph.
func (c *CLI) graphCommand(run func(cmd *cobra.Command, args []string, g *graph.Graph, cfg Config) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		g, cfg, err := c.loadGraph(cmd.Context())
		if err != nil {
			return err
		}
		return run(cmd, args, g, cfg)
	}
}
