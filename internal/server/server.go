// Package server exposes logo rendering over HTTP.
//
//	GET /api/health
//	GET /api/presets
//	GET /api/ifs?seed=
//	GET /api/render.png?seed=&width=&height=&points=&policy=&preset=
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/logo"
	"github.com/san-kum/randomlogo/internal/materialize"
)

const (
	DefaultMaxSide   = 2048
	DefaultMaxPoints = 5_000_000
	DefaultTimeout   = time.Minute
	cacheTTL         = 24 * time.Hour
)

type Options struct {
	Cache  cache.Cache
	Logger *log.Logger
	// MaxSide and MaxPoints bound what a single request may ask for.
	MaxSide   int
	MaxPoints int
	Timeout   time.Duration
}

type Server struct {
	base   *config.Config
	opts   Options
	router chi.Router
}

// New serves renders of base with per-request overrides.
func New(base *config.Config, opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.MaxSide <= 0 {
		opts.MaxSide = DefaultMaxSide
	}
	if opts.MaxPoints <= 0 {
		opts.MaxPoints = DefaultMaxPoints
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	s := &Server{base: base.Clone(), opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/presets", s.handlePresets)
		r.Get("/ifs", s.handleIFS)
		r.Get("/render.png", s.handleRender)
	})
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type presetInfo struct {
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	NPoints int    `json:"npoints"`
	Policy  string `json:"policy"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]presetInfo, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		out = append(out, presetInfo{Name: name, Width: p.Width, Height: p.Height, NPoints: p.NPoints, Policy: p.Policy})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIFS(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}
	sys, _, err := logo.Generate(cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sys.Export())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := logo.RenderFromConfig(r.Context(), cfg, logo.Options{
		Cache:    s.opts.Cache,
		CacheTTL: cacheTTL,
		Logger:   s.opts.Logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	img, err := res.Image()
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Seed", strconv.FormatUint(cfg.Seed, 10))
	w.Header().Set("X-Maps", strconv.Itoa(res.IFS.Len()))
	w.Header().Set("X-Cache", strconv.FormatBool(res.Stats.Cached))
	if err := materialize.EncodePNG(w, img); err != nil {
		s.opts.Logger.Warn("write png", "err", err)
	}
}

// requestConfig applies preset, seed, width, height, points and policy
// from the query onto the base config and validates the result.
func (s *Server) requestConfig(q url.Values) (*config.Config, error) {
	cfg := s.base.Clone()
	if name := q.Get("preset"); name != "" {
		if !cfg.ApplyPreset(name) {
			return nil, fault.Configf("server", "unknown preset %q", name)
		}
	}

	var err error
	if cfg.Seed, err = parseUintParam(q, "seed", cfg.Seed); err != nil {
		return nil, err
	}
	if cfg.Width, err = parseIntParam(q, "width", cfg.Width, 1, s.opts.MaxSide); err != nil {
		return nil, err
	}
	if cfg.Height, err = parseIntParam(q, "height", cfg.Height, 1, s.opts.MaxSide); err != nil {
		return nil, err
	}
	if cfg.NPoints, err = parseIntParam(q, "points", cfg.NPoints, 0, s.opts.MaxPoints); err != nil {
		return nil, err
	}
	if p := q.Get("policy"); p != "" {
		cfg.Policy = p
	}
	if p := q.Get("palette"); p != "" {
		cfg.Palette = p
	}
	if cfg.Width > s.opts.MaxSide || cfg.Height > s.opts.MaxSide || cfg.NPoints > s.opts.MaxPoints {
		return nil, fault.Configf("server", "request exceeds limits %dpx / %d points", s.opts.MaxSide, s.opts.MaxPoints)
	}
	if _, err := materialize.ParsePolicy(cfg.Policy); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func parseIntParam(values url.Values, key string, def, lo, hi int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fault.Configf("server", "%s: not an integer: %q", key, raw)
	}
	if v < lo || v > hi {
		return 0, fault.Configf("server", "%s must be in [%d, %d], got %d", key, lo, hi, v)
	}
	return v, nil
}

func parseUintParam(values url.Values, key string, def uint64) (uint64, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fault.Configf("server", "%s: not an unsigned integer: %q", key, raw)
	}
	return v, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case fault.IsConfiguration(err):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// Client went away.
		return
	}
	if status >= 500 {
		s.opts.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintln(w, `{"error":"encoding failed"}`)
	}
}
