package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/artistgraph/pkg/errors"
	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/render/nodelink"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.graph.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  st.Nodes,
		"edges":  st.Edges,
	})
}

// handleArtists handles GET /artists.
func (s *Server) handleArtists(w http.ResponseWriter, r *http.Request) {
	nodes := s.graph.Nodes()
	out := make([]ArtistResponse, len(nodes))
	for i, n := range nodes {
		out[i] = s.artist(n, false)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleArtist handles GET /artists/{name}.
func (s *Server) handleArtist(w http.ResponseWriter, r *http.Request) {
	name, err := artistParam(r, "name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, ok := s.graph.Node(name)
	if !ok {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeArtistNotFound, "artist not found: %q", name))
		return
	}
	writeJSON(w, http.StatusOK, s.artist(n, true))
}

// handleGenreNeighbors handles GET /artists/{name}/genre-neighbors.
func (s *Server) handleGenreNeighbors(w http.ResponseWriter, r *http.Request) {
	name, err := artistParam(r, "name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	names, err := s.graph.GenreNeighbors(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NeighborsResponse{Artist: name, Neighbors: nonNil(names)})
}

// handlePath handles GET /path?from=&to=.
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	for _, name := range []string{from, to} {
		if err := apperrors.ValidateArtistName(name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	hops, err := s.graph.ShortestPath(from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := PathResponse{From: from, To: to, Hops: make([]HopResponse, len(hops))}
	for i, h := range hops {
		resp.Hops[i] = HopResponse{From: h.From, To: h.To, Type: h.Kind.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTop handles GET /top?n=.
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	n, err := apperrors.ParseCount(r.URL.Query().Get("n"), graph.DefaultTopN)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ranked := s.graph.TopDegree(n)
	out := make([]RankedResponse, len(ranked))
	for i, rk := range ranked {
		out[i] = RankedResponse{Name: rk.Name, Degree: rk.Degree}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGraphJSON handles GET /graph.json.
func (s *Server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graph.Export(s.graph))
}

// handleGraphSVG handles GET /graph.svg.
func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	data, err := s.svg(r.Context(), nodelink.ToDOT(s.graph, s.render))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func (s *Server) artist(n *graph.Node, withNeighbors bool) ArtistResponse {
	a := ArtistResponse{
		Name:   n.Name,
		Genres: nonNil(n.Genres),
		Degree: s.graph.Degree(n.Name),
	}
	if withNeighbors {
		a.Neighbors = s.graph.Neighbors(n.Name)
	}
	return a
}

// artistParam reads and validates a path parameter. chi leaves it
// percent-encoded when the raw path was used for routing.
func artistParam(r *http.Request, key string) (string, error) {
	name := chi.URLParam(r, key)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return "", apperrors.New(apperrors.ErrCodeInvalidInput, "malformed artist name: %q", name)
		}
		name = unescaped
	}
	if err := apperrors.ValidateArtistName(name); err != nil {
		return "", err
	}
	return name, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
