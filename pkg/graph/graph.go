package graph

import (
	"errors"
	"slices"
)

var (
	// ErrArtistNotFound is returned by queries when an artist name is not a
	// node in the graph. Returned errors wrap it with the offending name, so
	// match with errors.Is.
	ErrArtistNotFound = errors.New("artist not found")

	// ErrNoPath is returned by [Graph.ShortestPath] when both artists exist
	// but lie in different connected components.
	ErrNoPath = errors.New("no path between artists")
)

// EdgeKind distinguishes the two relationships an edge can represent.
type EdgeKind int

const (
	// KindGenre links two artists that share at least one genre tag.
	// Genre edges carry a Weight equal to the number of shared tags.
	KindGenre EdgeKind = iota
	// KindCollaboration links two artists credited on the same recording.
	// Collaboration edges carry no weight.
	KindCollaboration
)

// String returns the lowercase name used in DOT output, JSON and the shell.
func (k EdgeKind) String() string {
	switch k {
	case KindGenre:
		return "genre"
	case KindCollaboration:
		return "collaboration"
	default:
		return "unknown"
	}
}

// Node is an artist vertex. Name is the unique, case-sensitive key as
// returned by the genre provider.
type Node struct {
	Name   string
	Genres []string // provider order, duplicates kept
}

// Edge is an undirected connection between two distinct artists.
// From and To record the orientation of the first write; lookups are
// symmetric.
type Edge struct {
	From   string
	To     string
	Kind   EdgeKind
	Weight int // shared genre count; zero unless Kind == KindGenre
}

// Other returns the endpoint of e opposite to name.
func (e Edge) Other(name string) string {
	if e.From == name {
		return e.To
	}
	return e.From
}

// pair is an unordered node pair used as the edge index key.
type pair struct{ a, b string }

func pairOf(u, v string) pair {
	if u > v {
		u, v = v, u
	}
	return pair{u, v}
}

// Graph is an undirected simple graph of artists with typed edges.
//
// Node insertion order and per-node neighbor insertion order are retained, so
// every traversal and query is deterministic for a fixed build. At most one
// edge exists per unordered pair: writing an edge onto an existing pair
// replaces its attributes without moving it in neighbor order.
//
// The zero value is not usable - use New or Build. Graph is not safe for
// concurrent mutation; it is built once and then only read.
type Graph struct {
	nodes []*Node
	index map[string]*Node
	adj   map[string][]string
	edges map[pair]*Edge
	order []pair // edge first-insertion order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]*Node),
		adj:   make(map[string][]string),
		edges: make(map[pair]*Edge),
	}
}

// addNode inserts a node unless one with the same name already exists.
// It reports whether a node was created.
func (g *Graph) addNode(name string, genres []string) bool {
	if _, exists := g.index[name]; exists {
		return false
	}
	n := &Node{Name: name, Genres: slices.Clone(genres)}
	g.nodes = append(g.nodes, n)
	g.index[name] = n
	return true
}

// setEdge creates the edge u-v or overwrites the attributes of the existing
// one. Self-loops and unknown endpoints are ignored; it reports whether the
// edge was written.
func (g *Graph) setEdge(u, v string, kind EdgeKind, weight int) bool {
	if u == v || !g.Has(u) || !g.Has(v) {
		return false
	}
	if kind != KindGenre {
		weight = 0
	}
	key := pairOf(u, v)
	if e, ok := g.edges[key]; ok {
		e.Kind = kind
		e.Weight = weight
		return true
	}
	g.edges[key] = &Edge{From: u, To: v, Kind: kind, Weight: weight}
	g.order = append(g.order, key)
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return true
}

// Has reports whether name is a node in the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Node returns the node with the given name and true, or nil and false.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.index[name]
	return n, ok
}

// Nodes returns all nodes in insertion order. The slice is a copy; the node
// pointers refer to the graph's own nodes and must be treated as read-only.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns copies of all edges in first-insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.order))
	for i, key := range g.order {
		out[i] = *g.edges[key]
	}
	return out
}

// Edge returns the edge between u and v in either orientation.
func (g *Graph) Edge(u, v string) (Edge, bool) {
	e, ok := g.edges[pairOf(u, v)]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Neighbors returns the names adjacent to name in neighbor insertion order.
// Returns nil if the node has no neighbors or doesn't exist. The returned
// slice must not be modified.
func (g *Graph) Neighbors(name string) []string { return g.adj[name] }

// Degree returns the number of edges incident to name regardless of kind.
// Returns 0 if the node doesn't exist.
func (g *Graph) Degree(name string) int { return len(g.adj[name]) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.order) }

// Stats summarizes a graph for diagnostics.
type Stats struct {
	Nodes          int
	Edges          int
	Genre          int
	Collaborations int
}

// Stats counts nodes and edges by kind.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.nodes), Edges: len(g.order)}
	for _, e := range g.edges {
		if e.Kind == KindCollaboration {
			s.Collaborations++
		} else {
			s.Genre++
		}
	}
	return s
}
