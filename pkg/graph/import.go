package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var kindFromString = map[string]EdgeKind{
	KindGenre.String():         KindGenre,
	KindCollaboration.String(): KindCollaboration,
}

// ReadDocument decodes a graph previously written by [WriteDocument].
//
// Degrees and stats in the input are ignored and recomputed. ReadDocument
// returns an error if the JSON is malformed, a node name is empty or
// duplicated, or an edge has an unknown type, a genre weight below one,
// references an unknown node or is a self-loop. The returned graph is independent of r; r is not closed.
func ReadDocument(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	for _, n := range doc.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("node with empty name")
		}
		if !g.addNode(n.Name, n.Genres) {
			return nil, fmt.Errorf("node %s: duplicate", n.Name)
		}
	}
	for _, e := range doc.Edges {
		kind, ok := kindFromString[e.Type]
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: unknown type %q", e.From, e.To, e.Type)
		}
		if kind == KindGenre && e.Weight < 1 {
			return nil, fmt.Errorf("edge %s-%s: genre weight must be positive, got %d", e.From, e.To, e.Weight)
		}
		if !g.setEdge(e.From, e.To, kind, e.Weight) {
			return nil, fmt.Errorf("edge %s-%s: invalid endpoints", e.From, e.To)
		}
	}
	return g, nil
}

// ImportDocument reads a JSON graph file at path.
func ImportDocument(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
