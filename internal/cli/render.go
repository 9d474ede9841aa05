package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/artistgraph/pkg/errors"
	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/render/nodelink"
)

const formatJSON = "json"

// renderSettings holds the diagram options shared by the render command,
// the console's visualize step and the HTTP API.
type renderSettings struct {
	title    string
	layout   string
	detailed bool
	noLegend bool
}

func (s renderSettings) options() nodelink.Options {
	return nodelink.Options{
		Title:    s.title,
		Detailed: s.detailed,
		Layout:   s.layout,
		NoLegend: s.noLegend,
	}
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path, base path for several formats, or "-" for stdout
	formats []string // svg, png, dot, json
	renderSettings
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the artist graph to PNG, SVG, DOT or JSON",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if !nodelink.ValidLayout(opts.layout) {
				return apperrors.New(apperrors.ErrCodeInvalidLayout, "invalid layout: %s", opts.layout)
			}
			return nil
		},
		RunE: c.graphCommand(func(cmd *cobra.Command, _ []string, g *graph.Graph, cfg Config) error {
			opts.applyDefaults(cfg)
			return runRender(cmd.Context(), g, &opts, cmd.OutOrStdout())
		}),
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png, svg, dot, json (comma-separated; default from output extension)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show genres in labels and weights on genre edges")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "graphviz layout engine: neato (default), fdp, sfdp, circo, twopi, dot")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().BoolVar(&opts.noLegend, "no-legend", false, "omit the edge legend")

	return cmd
}

// applyDefaults fills unset flags from the [render] config section. Without
// --format the format follows the output extension.
func (o *renderOpts) applyDefaults(cfg Config) {
	if o.output == "" {
		o.output = cfg.Render.Output
	}
	if o.title == "" {
		o.title = cfg.Render.Title
	}
	if o.layout == "" {
		o.layout = cfg.Render.Layout
	}
	if len(o.formats) == 0 {
		o.formats = []string{formatFromPath(o.output)}
	}
}

// parseFormats splits the --format flag. Empty yields nil so the format can
// be inferred from the output path.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{
	nodelink.FormatSVG: true,
	nodelink.FormatPNG: true,
	nodelink.FormatDOT: true,
	formatJSON:         true,
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'svg', 'dot', or 'json')", f)
		}
	}
	return nil
}

// formatFromPath infers the format from a file extension, defaulting to PNG.
func formatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if validFormats[ext] {
		return ext
	}
	return nodelink.FormatPNG
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if validFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender writes one file per requested format. A single format goes to
// opts.output verbatim; several formats share its base path.
func runRender(ctx context.Context, g *graph.Graph, opts *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	if opts.output == "-" {
		if len(opts.formats) != 1 {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "stdout output needs exactly one format")
		}
		data, err := encodeGraph(ctx, g, opts.formats[0], opts.renderSettings)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if len(opts.formats) == 1 {
		if err := writeGraph(ctx, g, opts.output, opts.formats[0], opts.renderSettings); err != nil {
			return err
		}
		printFile(opts.output)
		return nil
	}

	base := basePath(opts.output)
	for _, format := range opts.formats {
		path := base + "." + format
		if err := writeGraph(ctx, g, path, format, opts.renderSettings); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		printFile(path)
	}
	logger.Debugf("Rendered %d formats", len(opts.formats))
	return nil
}

// renderFile renders g to path in the format implied by its extension.
func renderFile(ctx context.Context, g *graph.Graph, path string, s renderSettings) error {
	return writeGraph(ctx, g, path, formatFromPath(path), s)
}

// writeGraph encodes g and writes it to path, creating parent directories.
func writeGraph(ctx context.Context, g *graph.Graph, path, format string, s renderSettings) error {
	data, err := encodeGraph(ctx, g, format, s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	loggerFromContext(ctx).Debugf("Generated %s: %d bytes", path, len(data))
	return nil
}

// encodeGraph produces the bytes of g in format.
func encodeGraph(ctx context.Context, g *graph.Graph, format string, s renderSettings) ([]byte, error) {
	if format == formatJSON {
		return graph.MarshalDocument(g)
	}
	dot := nodelink.ToDOT(g, s.options())
	return nodelink.Render(ctx, dot, format, s.layout)
}
