package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/artistgraph/pkg/errors"
	"github.com/matzehuels/artistgraph/pkg/graph"
)

// neighborsCommand creates the "neighbors" command.
func (c *CLI) neighborsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors <artist>",
		Short: "List artists sharing a genre link with an artist",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return apperrors.ValidateArtistName(args[0])
		},
		RunE: c.graphCommand(func(cmd *cobra.Command, args []string, g *graph.Graph, _ Config) error {
			names, err := g.GenreNeighbors(args[0])
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("%s has no genre connections", StyleHighlight.Render(args[0]))
				return nil
			}
			printSuccess("%d genre connections for %s", len(names), StyleHighlight.Render(args[0]))
			for _, n := range names {
				printDetail("%s", n)
			}
			return nil
		}),
	}
}

// pathCommand creates the "path" command.
func (c *CLI) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Show the shortest chain of links between two artists",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				if err := apperrors.ValidateArtistName(a); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: c.graphCommand(func(cmd *cobra.Command, args []string, g *graph.Graph, _ Config) error {
			hops, err := g.ShortestPath(args[0], args[1])
			if err != nil {
				return err
			}
			if len(hops) == 0 {
				printInfo("%s is the same artist", StyleHighlight.Render(args[0]))
				return nil
			}
			printSuccess("%d hops from %s to %s", len(hops), args[0], args[1])
			printHops(hops)
			return nil
		}),
	}
}

// topCommand creates the "top" command.
func (c *CLI) topCommand() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank artists by number of connections",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "-n must be positive, got %d", n)
			}
			return nil
		},
		RunE: c.graphCommand(func(cmd *cobra.Command, _ []string, g *graph.Graph, _ Config) error {
			ranked := g.TopDegree(n)
			if len(ranked) == 0 {
				printWarning("Graph is empty")
				return nil
			}
			fmt.Println(StyleTitle.Render("Most connected artists"))
			printRanking(ranked)
			return nil
		}),
	}

	cmd.Flags().IntVarP(&n, "count", "n", graph.DefaultTopN, "number of artists to show")
	return cmd
}

// fetchCommand creates the "fetch" command, which builds the graph and
// reports its size. Running it warms the response cache.
func (c *CLI) fetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch seed artists and print graph statistics",
		Args:  cobra.NoArgs,
		RunE: c.graphCommand(func(cmd *cobra.Command, _ []string, g *graph.Graph, cfg Config) error {
			printSuccess("Built artist graph")
			printStats(g.Stats())

			var isolated []string
			for _, n := range g.Nodes() {
				if g.Degree(n.Name) == 0 {
					isolated = append(isolated, n.Name)
				}
			}
			if len(isolated) > 0 {
				printKeyValue("Isolated", strings.Join(isolated, ", "))
			}
			printKeyValue("Backend", cfg.Cache.Backend)
			printNextStep("Explore it", appName+" shell")
			return nil
		}),
	}
}
