package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/internal/api"
	"github.com/matzehuels/artistgraph/pkg/graph"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the artist graph over HTTP",
		Args:  cobra.NoArgs,
		RunE: c.graphCommand(func(cmd *cobra.Command, _ []string, g *graph.Graph, cfg Config) error {
			settings := renderSettings{title: cfg.Render.Title, layout: cfg.Render.Layout, detailed: detailed}
			srv := api.New(g, c.Logger, settings.options())

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			printSuccess("Serving %d artists", g.NodeCount())
			printKeyValue("Address", StyleLink.Render("http://"+ln.Addr().String()))
			return serve(cmd.Context(), ln, srv.Handler())
		}),
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "detailed labels in /graph.svg")
	return cmd
}

// serve runs h on ln until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
