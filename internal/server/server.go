// Package server exposes table conversion over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bjaus/marktable"
	"github.com/bjaus/marktable/internal/config"
	"github.com/bjaus/marktable/internal/logging"
)

// Server is the HTTP conversion service.
type Server struct {
	cfg      config.ServerConfig
	registry *marktable.Registry
	router   *chi.Mux
}

// New returns a server converting through registry.
func New(cfg config.ServerConfig, registry *marktable.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		router:   chi.NewRouter(),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/formats", s.handleFormats)
	s.router.Post("/convert", s.handleConvert)
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type formatInfo struct {
	Name   string `json:"name"`
	Parse  bool   `json:"parse"`
	Render bool   `json:"render"`
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	formats := s.registry.Formats()
	out := make([]formatInfo, len(formats))
	for i, f := range formats {
		_, perr := s.registry.Parser(f)
		_, ferr := s.registry.Formatter(f)
		out[i] = formatInfo{Name: f.String(), Parse: perr == nil, Render: ferr == nil}
	}
	writeJSON(w, http.StatusOK, map[string]any{"formats": out})
}

// handleConvert reads the request body as ?from= and writes it back as ?to=.
// ?headers= takes auto, on or off.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := marktable.ParseFormat(q.Get("from"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	to, err := marktable.ParseFormat(q.Get("to"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return
	}
	mode, err := marktable.ParseHeaderMode(q.Get("headers"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if _, err := s.registry.Formatter(to); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxBodySize))
	t, err := marktable.New(body, from, marktable.WithHeaders(mode), marktable.WithRegistry(s.registry))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	var out bytes.Buffer
	if err := t.Write(&out, to); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	logging.WithFields(r.Context(), "from", from, "to", to).Debug("converted", "rows", t.Len())
	w.Header().Set("Content-Type", contentType(to))
	w.WriteHeader(http.StatusOK)
	if _, err := out.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("write response", "error", err)
	}
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, marktable.ErrMalformedSource), errors.Is(err, marktable.ErrDuplicateHeaders):
		return http.StatusUnprocessableEntity
	case errors.Is(err, marktable.ErrUnsupportedFormat), errors.Is(err, marktable.ErrNoFormatter),
		errors.Is(err, marktable.ErrInvalidTemplate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func contentType(f marktable.Format) string {
	switch f {
	case marktable.Markdown:
		return "text/markdown; charset=utf-8"
	case marktable.CSV:
		return "text/csv; charset=utf-8"
	case marktable.TSV:
		return "text/tab-separated-values; charset=utf-8"
	case marktable.HTML:
		return "text/html; charset=utf-8"
	case marktable.JSON:
		return "application/json"
	case marktable.JSONL:
		return "application/x-ndjson"
	case marktable.YAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.FromContext(r.Context()).Warn("request failed", "status", status, "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
