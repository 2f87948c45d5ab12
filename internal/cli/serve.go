package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textblock/internal/showcase"
	"github.com/matzehuels/textblock/pkg/cache"
	"github.com/matzehuels/textblock/pkg/document"
	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/observability"
	"github.com/matzehuels/textblock/pkg/pipeline"
)

const (
	headerRequestID = "X-Request-Id"
	headerCache     = "X-Cache"
	headerWidth     = "X-Block-Width"
	headerHeight    = "X-Block-Height"

	shutdownTimeout = 10 * time.Second
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	maxBody   int64
	noCache   bool
}

// serveCommand creates the serve command, which runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve renders layout documents over HTTP.

Endpoints:
  POST /render?format=text|json|dot|svg   body is a TOML or JSON document,
                                           chosen by Content-Type
  GET  /demo                               list the built-in demos
  GET  /demo/{name}                        render a built-in demo
  GET  /healthz                            liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("max-body") {
				opts.maxBody = c.Config.Serve.MaxBody
			}
			if opts.redisAddr != "" {
				c.Config.Cache.RedisAddr = opts.redisAddr
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared render cache (default: file cache)")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", pipeline.MaxSourceSize, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if rc, ok := runner.Cache.(*cache.RedisCache); ok {
		if err := rc.Ping(ctx); err != nil {
			return err
		}
		c.Logger.Info("using redis cache", "addr", c.Config.Cache.RedisAddr)
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, c.Logger, opts.maxBody).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	printSuccess("Serving on %s", opts.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// HTTP Server
// =============================================================================

// server handles render requests with a shared runner.
type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

func newServer(runner *pipeline.Runner, logger *log.Logger, maxBody int64) *server {
	if maxBody <= 0 {
		maxBody = pipeline.MaxSourceSize
	}
	return &server{runner: runner, logger: logger, maxBody: maxBody}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/demo", s.handleDemoList)
	r.Get("/demo/{name}", s.handleDemo)

	return r
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID tags each request with a UUID, reusing a valid incoming
// X-Request-Id.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Info("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	syntax, err := syntaxOf(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:      string(errors.ErrCodeInvalidInput),
				Error:     "document too large (max " + strconv.FormatInt(s.maxBody, 10) + " bytes)",
				RequestID: requestIDFrom(r.Context()),
			})
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	res, err := s.runner.Render(r.Context(), pipeline.Request{
		Source:  src,
		Syntax:  syntax,
		Format:  q.Get("format"),
		Refresh: refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatText
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set(headerWidth, strconv.Itoa(res.Width))
	h.Set(headerHeight, strconv.Itoa(res.Height))
	if res.Cached {
		h.Set(headerCache, "hit")
	} else {
		h.Set(headerCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

func (s *server) handleDemoList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"demos": showcase.Names()})
}

func (s *server) handleDemo(w http.ResponseWriter, r *http.Request) {
	b, err := showcase.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[pipeline.FormatText])
	h.Set(headerWidth, strconv.Itoa(b.Width()))
	h.Set(headerHeight, strconv.Itoa(b.Height()))
	w.WriteHeader(http.StatusOK)
	_, _ = b.WriteTo(w)
}

// syntaxOf picks the document syntax from the ?syntax= parameter or the
// Content-Type header. Requests without either are read as TOML.
func syntaxOf(r *http.Request) (string, error) {
	if syntax := r.URL.Query().Get("syntax"); syntax != "" {
		return syntax, errors.ValidateFormat(syntax, document.SyntaxTOML, document.SyntaxJSON)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return document.SyntaxTOML, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "bad Content-Type")
	}
	switch mt {
	case "application/json":
		return document.SyntaxJSON, nil
	case "application/toml", "text/x-toml", "text/plain":
		return document.SyntaxTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported Content-Type %q (want application/toml or application/json)", mt)
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON body of an error response.
type errorBody struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", requestIDFrom(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{
		Code:      string(code),
		Error:     errors.UserMessage(err),
		RequestID: requestIDFrom(r.Context()),
	})
}

// httpStatus maps an error code to an HTTP status code.
func httpStatus(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
