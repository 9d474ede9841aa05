// Package nodelink renders artist graphs as node-link diagrams.
//
// # Overview
//
// Artists appear as filled circles coloured by their first recognised genre.
// Genre-similarity edges are thin light-grey lines; collaboration edges are
// thick dashed red lines. A small legend cluster explains the two edge kinds.
//
// # Usage
//
// Convert a graph to DOT, then render it with Graphviz:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Title: "Japanese Artist Network"})
//	png, err := nodelink.Render(ctx, dot, nodelink.FormatPNG, nodelink.DefaultLayout)
//
// # Options
//
//   - Title: diagram heading, [DefaultTitle] when empty
//   - Detailed: genre tags in node labels, weights on genre edges
//   - Layout: Graphviz engine (neato, fdp, sfdp, circo, twopi, dot)
//
// Graphviz is embedded through WebAssembly by go-graphviz, so no system
// installation is needed.
package nodelink
