// Package server exposes the fragments over HTTP for the host admin pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/csrf"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
	"github.com/nhle/safetyflash/internal/view"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Store    store.Store
	Views    *view.Renderer
	Logger   *zap.Logger
	Issuer   csrf.Issuer
	Gatherer prometheus.Gatherer

	BaseURL     string
	DefaultLang string

	// Development relaxes the security headers for local use.
	Development bool
}

// Server routes fragment requests to the view renderer.
type Server struct {
	store  store.Store
	views  *view.Renderer
	log    *zap.Logger
	router chi.Router
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.DefaultLang == "" {
		opts.DefaultLang = "fi"
	}

	s := &Server{
		store: opts.Store,
		views: opts.Views,
		log:   opts.Logger,
	}

	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
		IsDevelopment:      opts.Development,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(sec.Handler)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/fragments", func(r chi.Router) {
		r.Use(session.Middleware(opts.BaseURL, opts.DefaultLang, opts.Issuer, s.log))

		r.Route("/flashes/{flashID}", func(r chi.Router) {
			r.Get("/targets", s.handleTargetSelector)
			r.Get("/targets-modal", s.withFlash(s.views.TargetsModal))
			r.Get("/meta", s.withFlash(s.views.MetaBox))
			r.Get("/targets-status", s.withFlash(s.views.TargetsStatus))
			r.Get("/playlist-status", s.withFlash(s.views.PlaylistStatus))
			r.Get("/preview", s.withFlash(func(_ context.Context, w io.Writer, sc *session.Context, f *model.Flash) error {
				return s.views.Preview(w, sc, f)
			}))
		})
		r.Get("/displays/{displayKeyID}/playlist", s.handlePlaylistManager)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
