package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/github"
)

// Server defaults.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	MaxRenderBodySize      = 1 << 20
)

// CardLoader fetches, parses and renders a card from GitHub.
type CardLoader interface {
	Load(ctx context.Context, t *github.Target) (*github.LoadedCard, error)
}

// MarkdownRenderer turns a card body into sanitized HTML.
type MarkdownRenderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// PageRenderer turns a card into a standalone HTML document.
type PageRenderer interface {
	Render(ctx context.Context, in shipcard.PageInput) (string, error)
}

// Config holds the server's collaborators and settings.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Loader       CardLoader
	Renderer     MarkdownRenderer
	Pages        PageRenderer
	Logger       *slog.Logger
}

// Server serves the card API.
type Server struct {
	cfg    Config
	logger *slog.Logger
	router chi.Router
}

// New builds a Server. Loader, Renderer and Pages are required.
func New(cfg Config) (*Server, error) {
	if cfg.Loader == nil || cfg.Renderer == nil || cfg.Pages == nil {
		return nil, errors.New("server: loader, renderer and pages are required")
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	h := &handler{loader: s.cfg.Loader, renderer: s.cfg.Renderer, pages: s.cfg.Pages, logger: s.logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/card/{owner}/{repo}", h.GetCard)
		r.Get("/card/{owner}/{repo}/*", h.GetCard)
		r.Post("/render", h.Render)
	})

	r.Get("/card/{owner}/{repo}", h.GetPage)
	r.Get("/card/{owner}/{repo}/*", h.GetPage)

	return r
}

// Serve listens on the configured address until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", slog.String("address", s.cfg.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return <-errCh
}
