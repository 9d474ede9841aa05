package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Fetched 63 of 64 artists (4.812s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports fetch, cache and HTTP events at debug level.
// It is registered with pkg/observability when --verbose is set.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnArtistStart(_ context.Context, seed string) {
	h.logger.Debug("fetching artist", "seed", seed)
}

func (h *logHooks) OnArtistComplete(_ context.Context, seed, name string, genres, credits int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("artist lookup failed", "seed", seed, "err", err, "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("artist done", "seed", seed, "name", name, "genres", genres, "credits", credits, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnBuild(_ context.Context, nodes, edges, collaborations int, d time.Duration) {
	h.logger.Debug("graph built", "nodes", nodes, "edges", edges, "collaborations", collaborations, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, ns string) {
	h.logger.Debug("cache hit", "ns", ns)
}

func (h *logHooks) OnCacheMiss(_ context.Context, ns string) {
	h.logger.Debug("cache miss", "ns", ns)
}

func (h *logHooks) OnCacheSet(_ context.Context, ns string, size int) {
	h.logger.Debug("cache set", "ns", ns, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}
