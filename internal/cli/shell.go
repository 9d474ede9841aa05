package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/pkg/graph"
)

// Command identifies a console menu entry. The numeric value is what the
// user types at the prompt.
type Command int

const (
	CmdGenreNeighbors Command = iota + 1
	CmdPath
	CmdTopArtists
	CmdVisualize
	CmdExit
)

// Console messages.
const (
	msgArtistNotFound   = "Artist not found in graph!"
	msgNoPath           = "No path exists between these artists"
	msgArtistsNotFound  = "One or both artists not found!"
	msgGraphEmpty       = "Graph is empty!"
	msgInvalidChoice    = "Invalid choice, please try again"
	msgExiting          = "Exiting..."
	msgMostConnected    = "Most connected artists:"
	msgChoosePrompt     = "Choose: "
	helpKeyword         = "help"
	shellTopArtistCount = graph.DefaultTopN
)

// errExit ends the session loop.
var errExit = errors.New("exit")

// menuEntry describes one menu entry: its label, the arguments it prompts
// for, and its handler. Handlers receive exactly one answer per prompt.
type menuEntry struct {
	label   string
	help    string
	prompts []string
	run     func(s *Shell, ctx context.Context, args []string) error
}

var shellCommands = map[Command]menuEntry{
	CmdGenreNeighbors: {
		label:   "Genre connections",
		help:    "list artists sharing a genre with an artist",
		prompts: []string{"Artist: "},
		run:     (*Shell).genreNeighbors,
	},
	CmdPath: {
		label:   "Collaboration path",
		help:    "shortest chain of links between two artists",
		prompts: []string{"Artist 1: ", "Artist 2: "},
		run:     (*Shell).path,
	},
	CmdTopArtists: {
		label: "Key artists",
		help:  "artists with the most connections",
		run:   (*Shell).topArtists,
	},
	CmdVisualize: {
		label: "Visualize",
		help:  "render the graph to an image",
		run:   (*Shell).visualize,
	},
	CmdExit: {
		label: "Exit",
		help:  "leave the console",
		run: func(s *Shell, _ context.Context, _ []string) error {
			s.println(msgExiting)
			return errExit
		},
	},
}

// Shell is the interactive menu over a built artist graph.
type Shell struct {
	graph  *graph.Graph
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger

	// save renders the graph and returns the path written.
	save func(ctx context.Context) (string, error)
}

// NewShell creates a console reading answers from in and writing to out.
func NewShell(g *graph.Graph, in io.Reader, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shell{graph: g, in: bufio.NewScanner(in), out: out, logger: logger}
}

// Run loops over the menu until the user exits, the input ends or ctx is
// cancelled. Handler failures are logged and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu()
		choice, ok := s.ask(msgChoosePrompt)
		if !ok {
			return s.in.Err()
		}

		if strings.EqualFold(choice, helpKeyword) || choice == "?" {
			s.printHelp()
			continue
		}
		cmd, ok := parseCommand(choice)
		if !ok {
			s.println(msgInvalidChoice)
			continue
		}

		err := s.dispatch(ctx, cmd)
		switch {
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			s.logger.Error("command failed", "command", shellCommands[cmd].label, "err", err)
			s.println("Error: " + err.Error())
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, cmd Command) error {
	entry := shellCommands[cmd]
	args := make([]string, 0, len(entry.prompts))
	for _, p := range entry.prompts {
		answer, ok := s.ask(p)
		if !ok {
			return io.EOF
		}
		args = append(args, answer)
	}
	return entry.run(s, ctx, args)
}

// parseCommand maps a menu answer such as "2" to its command.
func parseCommand(s string) (Command, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	cmd := Command(n)
	_, ok := shellCommands[cmd]
	return cmd, ok
}

func (s *Shell) genreNeighbors(_ context.Context, args []string) error {
	names, err := s.graph.GenreNeighbors(args[0])
	if errors.Is(err, graph.ErrArtistNotFound) {
		s.println(msgArtistNotFound)
		return nil
	}
	if err != nil {
		return err
	}
	s.println(fmt.Sprintf("Genre connections: [%s]", strings.Join(names, ", ")))
	return nil
}

func (s *Shell) path(_ context.Context, args []string) error {
	hops, err := s.graph.ShortestPath(args[0], args[1])
	switch {
	case errors.Is(err, graph.ErrArtistNotFound):
		s.println(msgArtistsNotFound)
		return nil
	case errors.Is(err, graph.ErrNoPath):
		s.println(msgNoPath)
		return nil
	case err != nil:
		return err
	}
	for _, h := range hops {
		s.println(formatHop(h))
	}
	return nil
}

func (s *Shell) topArtists(_ context.Context, _ []string) error {
	ranked := s.graph.TopDegree(shellTopArtistCount)
	if len(ranked) == 0 {
		s.println(msgGraphEmpty)
		return nil
	}
	s.println("\n" + msgMostConnected)
	for _, r := range ranked {
		s.println(formatRanked(r))
	}
	return nil
}

func (s *Shell) visualize(ctx context.Context, _ []string) error {
	if s.save == nil {
		return errors.New("rendering is not configured")
	}
	path, err := s.save(ctx)
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	s.println("Graph saved to " + path)
	return nil
}

// ask writes prompt and returns the next trimmed input line. ok is false
// once the input is exhausted.
func (s *Shell) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) printMenu() {
	var b strings.Builder
	b.WriteString("\n")
	for cmd := CmdGenreNeighbors; cmd <= CmdExit; cmd++ {
		fmt.Fprintf(&b, "%d. %s\n", cmd, shellCommands[cmd].label)
	}
	fmt.Fprint(s.out, b.String())
}

func (s *Shell) printHelp() {
	for cmd := CmdGenreNeighbors; cmd <= CmdExit; cmd++ {
		entry := shellCommands[cmd]
		fmt.Fprintf(s.out, "  %d  %-20s %s\n", cmd, entry.label, StyleDim.Render(entry.help))
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

// formatHop renders one path step as "A → B (kind)".
func formatHop(h graph.Hop) string {
	return fmt.Sprintf("%s %s %s (%s)", h.From, iconArrow, h.To, h.Kind)
}

// formatRanked renders a degree ranking line.
func formatRanked(r graph.Ranked) string {
	return fmt.Sprintf("%s: %d connections", r.Name, r.Degree)
}

// shellCommand creates the "shell" command, the interactive console.
func (c *CLI) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Fetch artists and explore the graph interactively",
		Args:  cobra.NoArgs,
		RunE: c.graphCommand(func(cmd *cobra.Command, _ []string, g *graph.Graph, cfg Config) error {
			printStats(g.Stats())
			sh := NewShell(g, cmd.InOrStdin(), cmd.OutOrStdout(), c.Logger)
			sh.save = func(ctx context.Context) (string, error) {
				return cfg.Render.Output, renderFile(ctx, g, cfg.Render.Output, renderSettings{
					title:  cfg.Render.Title,
					layout: cfg.Render.Layout,
				})
			}
			return sh.Run(cmd.Context())
		}),
	}
}
