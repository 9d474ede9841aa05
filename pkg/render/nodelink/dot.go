package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/artistgraph/pkg/graph"
)

// DefaultTitle is the diagram title used when [Options.Title] is empty.
const DefaultTitle = "Artist Network (Genres & Collaborations)"

const (
	defaultColor       = "gray"
	genreEdgeColor     = "lightgray"
	collabEdgeColor    = "red"
	legendGenreLabel   = "Genre Similarity"
	legendCollabLabel  = "Collaborations"
	legendClusterTitle = "Legend"
)

// palette maps a lowercase genre tag to a node fill colour. A node takes the
// colour of its first genre found here.
var palette = map[string]string{
	"indie rock":         "lightblue",
	"alternative rock":   "lightgreen",
	"bedroom pop":        "pink",
	"indie pop":          "orange",
	"pop":                "violet",
	"rock":               "red",
	"dream pop":          "purple",
	"folk":               "gold",
	"j-pop":              "cyan",
	"j-rock":             "lightcoral",
	"japanese indie":     "lightpink",
	"j-rap":              "lightyellow",
	"j-hip hop":          "coral",
	"electronic":         "yellow",
	"anime":              "lightgray",
	"vocaloid":           "silver",
	"japanese classical": "lightpink",
}

// Options configures artist graph rendering.
type Options struct {
	// Title is drawn above the graph. Empty means [DefaultTitle].
	Title string
	// Detailed adds genre tags to node labels and weights to genre edges.
	Detailed bool
	// Layout is the Graphviz engine used by [Render]. Empty means neato.
	Layout string
	// NoLegend omits the edge-kind legend.
	NoLegend bool
}

// NodeColor returns the fill colour for an artist with the given genres.
func NodeColor(genres []string) string {
	for _, g := range genres {
		if c, ok := palette[strings.ToLower(g)]; ok {
			return c
		}
	}
	return defaultColor
}

// ToDOT converts an artist graph to undirected Graphviz DOT.
// Nodes and edges are emitted in graph insertion order, so the output is
// stable for a given graph.
func ToDOT(g *graph.Graph, opts Options) string {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", title)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  fontsize=28;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10, fixedsize=false, penwidth=0];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.Name, fmtLabel(n, opts.Detailed), NodeColor(n.Genres))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, strings.Join(fmtEdgeAttrs(e, opts.Detailed), ", "))
	}

	if !opts.NoLegend {
		writeLegend(&buf)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	if !detailed || len(n.Genres) == 0 {
		return n.Name
	}
	return n.Name + "\n" + strings.Join(n.Genres, ", ")
}

func fmtEdgeAttrs(e graph.Edge, detailed bool) []string {
	if e.Kind == graph.KindCollaboration {
		return []string{fmt.Sprintf("color=%q", collabEdgeColor), "style=dashed", "penwidth=2"}
	}
	attrs := []string{fmt.Sprintf("color=%q", genreEdgeColor), "penwidth=1"}
	if detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", fmt.Sprint(e.Weight)), "fontsize=8")
	}
	return attrs
}

func writeLegend(buf *bytes.Buffer) {
	buf.WriteString("\n  subgraph cluster_legend {\n")
	fmt.Fprintf(buf, "    label=%q;\n", legendClusterTitle)
	buf.WriteString("    fontsize=12;\n")
	buf.WriteString("    style=rounded;\n")
	buf.WriteString("    node [shape=plaintext, style=\"\", fontsize=10, width=0, height=0];\n")
	buf.WriteString("    \"legend:genre:a\" [label=\"\"];\n")
	fmt.Fprintf(buf, "    \"legend:genre:b\" [label=%q];\n", legendGenreLabel)
	buf.WriteString("    \"legend:collab:a\" [label=\"\"];\n")
	fmt.Fprintf(buf, "    \"legend:collab:b\" [label=%q];\n", legendCollabLabel)
	fmt.Fprintf(buf, "    \"legend:genre:a\" -- \"legend:genre:b\" [color=%q, penwidth=1];\n", genreEdgeColor)
	fmt.Fprintf(buf, "    \"legend:collab:a\" -- \"legend:collab:b\" [color=%q, style=dashed, penwidth=2];\n", collabEdgeColor)
	buf.WriteString("  }\n")
}
