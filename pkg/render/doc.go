// Package render groups the visualization backends for artist graphs.
//
// The [nodelink] subpackage converts a graph to Graphviz DOT and renders it
// to PNG or SVG through the embedded Graphviz build:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG, nodelink.DefaultLayout)
//
// [nodelink]: github.com/matzehuels/artistgraph/pkg/render/nodelink
package render
