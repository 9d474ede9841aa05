package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Output formats accepted by [Render].
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// DefaultLayout approximates a force-directed spring layout.
const DefaultLayout = "neato"

var layouts = map[string]graphviz.Layout{
	"neato": graphviz.NEATO,
	"fdp":   graphviz.FDP,
	"sfdp":  graphviz.SFDP,
	"circo": graphviz.CIRCO,
	"twopi": graphviz.TWOPI,
	"dot":   graphviz.DOT,
}

// ValidLayout reports whether name is a supported Graphviz engine.
func ValidLayout(name string) bool {
	_, ok := layouts[name]
	return name == "" || ok
}

// Render lays out dot with the given engine and encodes it in format.
// FormatDOT returns the source unchanged.
func Render(ctx context.Context, dot, format, layout string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		svg, err := render(ctx, dot, graphviz.SVG, layout)
		if err != nil {
			return nil, err
		}
		return normalizeViewBox(svg), nil
	case FormatPNG:
		return render(ctx, dot, graphviz.PNG, layout)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// RenderSVG renders a DOT graph to SVG with the default layout.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG, DefaultLayout)
}

func render(ctx context.Context, dot string, format graphviz.Format, layout string) ([]byte, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	engine, ok := layouts[layout]
	if !ok {
		return nil, fmt.Errorf("unsupported layout: %s", layout)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
