package main

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"activity-log/internal/cache"
	"activity-log/internal/config"
	"activity-log/internal/github"
)

// Request body size limits
const (
	maxBodySize = 4 * 1024 // the theme form carries two short fields
)

//go:embed static/style.css
var styleCSS []byte

// limitBody wraps an HTTP handler to limit request body size
func limitBody(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// securityHeaders wraps an HTTP handler to add security headers
func securityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Content Security Policy
		// - default-src 'self': only load resources from same origin by default
		// - img-src: GitHub's favicons
		// - script-src 'none': pages are fully server rendered
		// - form-action 'self': the theme and user forms post back here
		csp := "default-src 'self'; " +
			"img-src 'self' https://github.githubassets.com; " +
			"style-src 'self'; " +
			"script-src 'none'; " +
			"form-action 'self'"
		w.Header().Set("Content-Security-Policy", csp)

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Referrer policy - don't leak full URLs to external sites
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

// newApp builds the feed pipeline from cfg. The returned backend must be
// closed on shutdown.
func newApp(ctx context.Context, cfg config.Config) (*app, cache.CacheBackend, error) {
	var limiter *rate.Limiter
	if cfg.GitHubRatePerMin > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.GitHubRatePerMin)), cfg.GitHubRatePerMin)
	}

	client, err := github.NewClient(github.Options{
		BaseURL:    cfg.GitHubAPIURL,
		PerPage:    cfg.GitHubPerPage,
		UserAgent:  cfg.GitHubUserAgent,
		HTTPClient: &http.Client{Timeout: cfg.GitHubTimeout},
		Limiter:    limiter,
		Observer:   fetchObserver{},
	})
	if err != nil {
		return nil, nil, err
	}

	backend, backendType := cache.Open(ctx, cache.CacheConfig{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		MaxEntries: cfg.FeedCacheSize,
	})
	buildInfo.WithLabelValues(backendType).Set(1)

	return &app{
		feeds:         newFeedStore(client, backend, cfg.FeedCacheTTL),
		hostingSuffix: cfg.HostingSuffix,
		timezone:      cfg.DisplayTimezone,
	}, backend, nil
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", securityHeaders(a.activityHandler))
	mux.Handle("POST /theme", http.NewCrossOriginProtection().Handler(
		securityHeaders(limitBody(themeHandler, maxBodySize))))
	mux.HandleFunc("GET /static/style.css", styleHandler)
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	return RequestLoggingMiddleware(mux)
}

func main() {
	cfg, err := config.Load()
	InitLogger(cfg.LogLevel)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, backend, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "github_api", cfg.GitHubAPIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

func styleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write(styleCSS)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
