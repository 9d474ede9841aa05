package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Persistent flags shared by every subcommand:
//   - --verbose (-v): debug logging, including per-request HTTP and cache events
//   - --config: TOML config file (default $XDG_CONFIG_HOME/artistgraph/config.toml)
//   - --seeds-file: newline-separated artist names replacing the configured seeds
//   - --graph: load a saved JSON graph instead of fetching
//   - --no-cache: bypass the response cache
//   - --refresh: refetch upstream data and overwrite cached entries
//
// The logger is attached to the command context and accessible via
// loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Artistgraph links artists by shared genres and collaborations",
		Long: `Artistgraph fetches genres from Spotify and recording credits from MusicBrainz
for a list of seed artists, links them into one graph, and lets you query,
render, browse or serve it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/"+appName+"/config.toml)")
	flags.StringVar(&c.seedsFile, "seeds-file", "", "file with one seed artist per line")
	flags.StringVar(&c.graphFile, "graph", "", "load a JSON graph saved with 'render -f json' instead of fetching")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVar(&c.refresh, "refresh", false, "refetch upstream data, overwriting cached entries")

	root.AddCommand(c.shellCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.neighborsCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.topCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.completionCommand())

	return root
}
