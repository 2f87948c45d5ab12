// Package cli implements the textblock command-line interface.
//
// This package provides commands for rendering layout documents, printing
// and viewing the built-in demos, serving renders over HTTP, and managing
// the render cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Render a TOML or JSON layout document as text, JSON, DOT or SVG
//   - demo: Print one of the built-in demo layouts
//   - view: Browse a rendered layout in a scrollable terminal viewer
//   - serve: Run the HTTP render service
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces pipeline, cache and request events. Loggers are passed through
// context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textblock/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Rendered invoice.toml (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnParseStart(_ context.Context, syntax string, size int) {
	h.logger.Debug("parse", "syntax", syntax, "bytes", size)
}

func (h *logHooks) OnParseComplete(_ context.Context, syntax string, nodes int, d time.Duration, err error) {
	h.logger.Debug("parsed", "syntax", syntax, "nodes", nodes, "duration", d, "err", err)
}

func (h *logHooks) OnBuildStart(_ context.Context, nodes int) {
	h.logger.Debug("layout", "nodes", nodes)
}

func (h *logHooks) OnBuildComplete(_ context.Context, width, height int, d time.Duration, err error) {
	h.logger.Debug("laid out", "width", width, "height", height, "duration", d, "err", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("rendered", "format", format, "bytes", size, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *logHooks) OnCacheError(_ context.Context, kind string, err error) {
	h.logger.Debug("cache error", "kind", kind, "err", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)
