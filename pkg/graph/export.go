package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the JSON form of a graph, consumed by the HTTP API and written
// by `render --format json`. Nodes appear in insertion order and edges in
// first-insertion order, so the output is stable for a fixed build.
type Document struct {
	Nodes []DocumentNode `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
	Stats DocumentStats  `json:"stats"`
}

// DocumentNode is a serialized artist.
type DocumentNode struct {
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Degree int      `json:"degree"`
}

// DocumentEdge is a serialized edge. Weight is omitted for collaborations.
type DocumentEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Type   string `json:"type"`
	Weight int    `json:"weight,omitempty"`
}

// DocumentStats mirrors [Stats].
type DocumentStats struct {
	Nodes          int `json:"nodes"`
	Edges          int `json:"edges"`
	Genre          int `json:"genre_edges"`
	Collaborations int `json:"collaboration_edges"`
}

// Export converts g to its serialization form.
func Export(g *Graph) Document {
	doc := Document{
		Nodes: make([]DocumentNode, 0, g.NodeCount()),
		Edges: make([]DocumentEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.nodes {
		genres := n.Genres
		if genres == nil {
			genres = []string{}
		}
		doc.Nodes = append(doc.Nodes, DocumentNode{Name: n.Name, Genres: genres, Degree: g.Degree(n.Name)})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, DocumentEdge{From: e.From, To: e.To, Type: e.Kind.String(), Weight: e.Weight})
	}
	s := g.Stats()
	doc.Stats = DocumentStats{Nodes: s.Nodes, Edges: s.Edges, Genre: s.Genre, Collaborations: s.Collaborations}
	return doc
}

// MarshalDocument converts g to indented JSON bytes.
func MarshalDocument(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes g as indented JSON to w.
func WriteDocument(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDocumentFile writes g as JSON to path, creating or truncating it.
func WriteDocumentFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(g, f)
}
