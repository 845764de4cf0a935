package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/matrixview/internal/api"
	"github.com/mmynk/matrixview/internal/auth"
	"github.com/mmynk/matrixview/internal/config"
	"github.com/mmynk/matrixview/internal/metrics"
	"github.com/mmynk/matrixview/internal/middleware"
	"github.com/mmynk/matrixview/internal/repository"
	"github.com/mmynk/matrixview/internal/service"
	"github.com/mmynk/matrixview/internal/share"
	"github.com/mmynk/matrixview/internal/storage/sqlite"
	"github.com/mmynk/matrixview/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env", nil)
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath, "key", cfg.StorageKey)

	m := metrics.New()
	repo := repository.New(store,
		repository.WithKey(cfg.StorageKey),
		repository.WithErrorHandler(m.ObserveStorageFailure),
	)
	svc := service.NewNoteService(repo, share.NewFormatter(cfg.Currency, loc))

	// Auth runs first so the logging interceptor sees the device ID.
	var interceptors []connect.Interceptor
	if cfg.AuthEnabled() {
		interceptors = append(interceptors, middleware.RequireAuth(auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL)))
	} else {
		slog.Warn("AUTH_SECRET not set, RPCs are unauthenticated")
	}
	interceptors = append(interceptors, middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m))

	mux := http.NewServeMux()
	notePath, noteHandler := api.NewNoteServiceHandler(svc, connect.WithInterceptors(interceptors...))
	mux.Handle(notePath, noteHandler)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		if !strings.HasPrefix(r.URL.Path, "/healthz") {
			slog.Info("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
