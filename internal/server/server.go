// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET /cards/{id}/nametags.{pdf,png,html}   download a sheet (attachment)
//	GET /cards/{id}/preview.{png,html}        preview one tag (inline)
//	GET /healthz                              liveness probe
//	GET /version                              build information
//
// Render preferences are read from the query string with prefs.FromValues.
// The query parameters mode (cell or sheet), preset (preview or print) and
// raster_cells (PDF only) override the route defaults.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mwarrick/digital-business-card-sub004/pkg/buildinfo"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/pipeline"
	"github.com/mwarrick/digital-business-card-sub004/pkg/prefs"
)

// HeaderRenderID carries the render ID of a response.
const HeaderRenderID = "X-Render-ID"

const (
	defaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Server serves rendered name tags.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRequestTimeout bounds the time spent on one request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Server rendering with runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.Default(),
		timeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/cards/{id}", func(r chi.Router) {
		r.Get("/nametags.{format}", s.handleDownload)
		r.Get("/preview.{format}", s.handlePreview)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(buildinfo.Get())
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, pipeline.ModeSheet, "print", true)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "format") == pipeline.FormatPDF {
		http.Error(w, "previews are png or html", http.StatusNotFound)
		return
	}
	s.serve(w, r, pipeline.ModeCell, "preview", false)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, mode, preset string, attachment bool) {
	q := r.URL.Query()
	p, err := prefs.FromValues(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		CardID:      chi.URLParam(r, "id"),
		Format:      chi.URLParam(r, "format"),
		Mode:        mode,
		Preset:      preset,
		Preferences: &p,
		Logger:      s.logger.With("request_id", middleware.GetReqID(r.Context())),
	}
	if v := q.Get("mode"); v != "" {
		opts.Mode = v
	}
	if v := q.Get("preset"); v != "" {
		opts.Preset = v
	}
	if v := q.Get("raster_cells"); v != "" {
		opts.RasterCells, _ = strconv.ParseBool(v)
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	h := w.Header()
	h.Set("Content-Type", res.Artifact.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact.Data)))
	h.Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, res.Filename))
	h.Set("Cache-Control", "no-store")
	h.Set(HeaderRenderID, res.RenderID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact.Data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errs.IsNotFound(err):
		http.Error(w, "card not found", http.StatusNotFound)
	case errs.IsValidation(err):
		http.Error(w, errs.UserMessage(err), http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		http.Error(w, "request timed out", http.StatusServiceUnavailable)
	default:
		s.logger.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
