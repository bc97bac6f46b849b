// Package server exposes the workbook pipeline over HTTP.
//
// Every request builds its own graph; the server holds no state between
// requests. Routes:
//
//	POST /v1/import?format=xlsx|zip   workbook body → graph JSON document
//	POST /v1/export?format=xlsx|zip|json   graph JSON body → workbook bytes
//	POST /v1/lines                    graph JSON body → reconstructed rows as JSON
//	GET  /healthz                     liveness probe
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rserrors "github.com/matzehuels/railsheet/pkg/errors"
	graphio "github.com/matzehuels/railsheet/pkg/io"
	"github.com/matzehuels/railsheet/pkg/observability"
	"github.com/matzehuels/railsheet/pkg/pipeline"
)

// Response headers set on successful conversions.
const (
	HeaderGraphHash = "X-Railsheet-Graph-Hash"
	HeaderNotes     = "X-Railsheet-Notes"
)

// DefaultMaxBodySize limits request bodies when Options.MaxBodySize is zero.
const DefaultMaxBodySize = 32 << 20

var contentTypes = map[string]string{
	pipeline.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	pipeline.FormatZip:  "application/zip",
	pipeline.FormatJSON: "application/json",
}

// Options configures a Server.
type Options struct {
	Logger      *log.Logger
	MaxBodySize int64
}

// Server serves the conversion routes.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

// New creates a server that converts with runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	return &Server{runner: runner, logger: opts.Logger, maxBody: opts.MaxBodySize}
}

// Handler returns the router with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/import", s.handleImport)
		r.Post("/export", s.handleExport)
		r.Post("/lines", s.handleLines)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImport handles POST /v1/import.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	format := formatParam(r, pipeline.FormatXLSX)
	if format == pipeline.FormatJSON {
		writeError(w, http.StatusBadRequest, rserrors.ErrCodeUnsupported, "import expects a workbook, not a graph document")
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	res, err := s.runner.ImportBytes(r.Context(), body, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := graphio.WriteJSON(res.Graph, res.View, &buf); err != nil {
		s.fail(w, r, rserrors.Wrap(rserrors.ErrCodeInternal, err, "cannot encode graph"))
		return
	}
	w.Header().Set(HeaderGraphHash, res.GraphHash)
	w.Header().Set(HeaderNotes, strconv.Itoa(len(res.Report.Notes)))
	writeBytes(w, pipeline.FormatJSON, buf.Bytes())
}

// handleExport handles POST /v1/export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := formatParam(r, pipeline.FormatXLSX)

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	res, err := s.runner.ImportBytes(r.Context(), body, pipeline.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, _, err := s.runner.ExportBytes(r.Context(), res.Graph, res.View, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(HeaderGraphHash, res.GraphHash)
	writeBytes(w, format, data)
}

// handleLines handles POST /v1/lines.
func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	res, err := s.runner.ImportBytes(r.Context(), body, pipeline.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rebuilt := s.runner.Rebuild(res.Graph, res.View)
	w.Header().Set(HeaderGraphHash, res.GraphHash)
	writeJSON(w, http.StatusOK, rebuilt.Rows)
}

// =============================================================================
// Helpers
// =============================================================================

func formatParam(r *http.Request, fallback string) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return fallback
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, rserrors.ErrCodeInvalidInput, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, rserrors.ErrCodeInvalidInput, "cannot read request body")
		return nil, false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, rserrors.ErrCodeInvalidInput, "request body is empty")
		return nil, false
	}
	return body, true
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := rserrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeError(w, status, code, rserrors.UserMessage(err))
}

func statusFor(code rserrors.Code) int {
	switch code {
	case rserrors.ErrCodeMissingSheet, rserrors.ErrCodeEmptySheet, rserrors.ErrCodeInvalidField,
		rserrors.ErrCodeInvalidWorkbook, rserrors.ErrCodeInvalidGraph:
		return http.StatusUnprocessableEntity
	case rserrors.ErrCodeInvalidInput, rserrors.ErrCodeInvalidConfig, rserrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// observe reports every request to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code rserrors.Code, message string) {
	writeJSON(w, status, map[string]string{"error": message, "code": string(code)})
}

func writeBytes(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
