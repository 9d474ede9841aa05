// Package api serves a built artist graph over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /artists                          all artists with degree and genres
//	GET /artists/{name}                   one artist with its neighbors
//	GET /artists/{name}/genre-neighbors   artists linked by a genre edge
//	GET /path?from=&to=                   shortest path, one hop per link
//	GET /top?n=                           artists ranked by degree
//	GET /graph.json                       the whole graph as a document
//	GET /graph.svg                        the rendered node-link diagram
//
// Errors are JSON bodies carrying a machine-readable code from pkg/errors.
// Every response carries an X-Request-ID header.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/artistgraph/pkg/errors"
	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/render/nodelink"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Server answers graph queries. The graph is read-only once served.
type Server struct {
	graph  *graph.Graph
	logger *log.Logger
	render nodelink.Options

	// svg renders the diagram; replaced in tests to avoid Graphviz.
	svg func(ctx context.Context, dot string) ([]byte, error)
}

// New creates a server over g. A nil logger discards request logs.
func New(g *graph.Graph, logger *log.Logger, render nodelink.Options) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{graph: g, logger: logger, render: render}
	s.svg = func(ctx context.Context, dot string) ([]byte, error) {
		return nodelink.Render(ctx, dot, nodelink.FormatSVG, render.Layout)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID, s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/artists", s.handleArtists)
	r.Get("/artists/{name}", s.handleArtist)
	r.Get("/artists/{name}/genre-neighbors", s.handleGenreNeighbors)
	r.Get("/path", s.handlePath)
	r.Get("/top", s.handleTop)
	r.Get("/graph.json", s.handleGraphJSON)
	r.Get("/graph.svg", s.handleGraphSVG)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID reuses an inbound X-Request-ID or mints a UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID returns the ID assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", RequestID(r.Context()))
	})
}

// =============================================================================
// Responses
// =============================================================================

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// ArtistResponse describes one artist.
type ArtistResponse struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors,omitempty"`
}

// NeighborsResponse lists genre-linked artists.
type NeighborsResponse struct {
	Artist    string   `json:"artist"`
	Neighbors []string `json:"neighbors"`
}

// HopResponse is one step of a path.
type HopResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// PathResponse is the shortest path between two artists.
type PathResponse struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Hops []HopResponse `json:"hops"`
}

// RankedResponse is one entry of a degree ranking.
type RankedResponse struct {
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError classifies err and writes it with the matching status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = apperrors.Classify(err)
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{
		Error:     apperrors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestID(r.Context()),
	})
}
