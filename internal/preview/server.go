// Package preview serves rendered quotes and links over HTTP and a
// WebSocket channel, so an editor can show the output while the user
// types a reference.
//
// Every render is non-verbose: failures are returned to the client and
// logged, never reported through a notifier.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/FocuswithJustin/versequote/core/render"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/internal/cache"
	"github.com/FocuswithJustin/versequote/internal/logging"
	"github.com/FocuswithJustin/versequote/internal/server"
	"github.com/FocuswithJustin/versequote/internal/settings"
)

// Config holds preview server options.
type Config struct {
	Port int

	// AllowedOrigins restricts CORS and WebSocket origins. Empty allows all.
	AllowedOrigins []string

	// MaxMessageSize bounds WebSocket messages in bytes.
	MaxMessageSize int64

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default preview options.
func DefaultConfig() Config {
	return Config{
		Port:           8089,
		MaxMessageSize: 4096,
		WriteTimeout:   10 * time.Second,
	}
}

// Refresher is implemented by stores that cache the vault.
type Refresher interface {
	Invalidate()
}

// CacheReporter is implemented by stores with a heading cache.
type CacheReporter interface {
	CacheStats() cache.Stats
}

// Server renders previews from a vault.
type Server struct {
	cfg      Config
	settings settings.Settings
	store    vault.Store
	renderer *render.Renderer
}

// New creates a preview server over store.
func New(store vault.Store, s settings.Settings, cfg Config) *Server {
	return &Server{
		cfg:      cfg,
		settings: s,
		store:    store,
		renderer: render.New(store, nil),
	}
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/quote", s.handleQuote)
	mux.HandleFunc("POST /api/links", s.handleLinks)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	var handler http.Handler = server.SecurityHeaders(server.APICSPConfig(), mux)
	handler = server.CORS(server.CORSConfig{AllowedOrigins: s.cfg.AllowedOrigins}, handler)
	return logging.CombinedMiddleware(handler)
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logging.GetLogger().Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logging.ServerStartup("preview", s.cfg.Port, "websocket_path", "/ws")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown preview server: %w", err)
		}
		s.logCacheStats()
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// logCacheStats logs the heading cache statistics of the store, if it has
// a heading cache.
func (s *Server) logCacheStats() {
	reporter, ok := s.store.(CacheReporter)
	if !ok {
		return
	}
	stats := reporter.CacheStats()
	logging.Info("heading_cache_stats",
		"hits", stats.Hits,
		"misses", stats.Misses,
		"evictions", stats.Evictions,
		"size", stats.Size,
	)
}

// QuoteRequest asks for a quote preview. A nil LinkOnly uses the preset.
type QuoteRequest struct {
	Input       string `json:"input"`
	Translation string `json:"translation,omitempty"`
	LinkOnly    *bool  `json:"linkOnly,omitempty"`
}

// LinksRequest asks for a links preview. Empty or nil options use the
// presets.
type LinksRequest struct {
	Input    string `json:"input"`
	Flavor   string `json:"flavor,omitempty"`
	NewLines *bool  `json:"newLines,omitempty"`
}

// quote renders a quote preview and logs the render.
func (s *Server) quote(ctx context.Context, req QuoteRequest) (string, error) {
	start := time.Now()
	out, err := s.renderQuote(ctx, req)
	logging.RenderEvent(ctx, "quote", req.Input, time.Since(start), err)
	return out, err
}

func (s *Server) renderQuote(ctx context.Context, req QuoteRequest) (string, error) {
	root, err := s.settings.TranslationRoot(req.Translation)
	if err != nil {
		return "", err
	}
	linkOnly := s.settings.LinkOnly
	if req.LinkOnly != nil {
		linkOnly = *req.LinkOnly
	}
	return s.renderer.Quote(ctx, req.Input, s.settings.Render, root, linkOnly, false)
}

// links renders a links preview and logs the render.
func (s *Server) links(ctx context.Context, req LinksRequest) (string, error) {
	start := time.Now()
	out, err := s.renderLinks(req)
	logging.RenderEvent(ctx, "links", req.Input, time.Since(start), err)
	return out, err
}

func (s *Server) renderLinks(req LinksRequest) (string, error) {
	flavor := s.settings.LinkFlavorPreset
	if req.Flavor != "" {
		f, err := render.ParseLinkFlavor(req.Flavor)
		if err != nil {
			return "", err
		}
		flavor = f
	}
	newLines := s.settings.NewLinePreset
	if req.NewLines != nil {
		newLines = *req.NewLines
	}
	return s.renderer.Links(req.Input, s.settings.Render, flavor, newLines)
}
