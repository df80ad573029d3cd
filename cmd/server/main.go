// Package main initializes and starts the readsync HTTP server,
// setting up configuration, logging, the key-value backend, repositories,
// services, handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/readsync/internal/config"
	"github.com/atinyakov/readsync/internal/db"
	"github.com/atinyakov/readsync/internal/kv"
	"github.com/atinyakov/readsync/internal/logger"
	"github.com/atinyakov/readsync/internal/repository"
	"github.com/atinyakov/readsync/internal/server/handler/http"
	"github.com/atinyakov/readsync/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the key-value backend.
	store, closer, err := openStore(ctx, options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init storage", zap.String("storage", options.Storage), zap.Error(err))
	}
	defer func() { _ = closer.Close() }()

	// Initialize repositories for credentials and progress.
	authRepo := repository.NewKVAuthRepository(store)
	syncRepo := repository.NewKVSyncRepository(store)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	syncService := service.NewSyncService(syncRepo)

	// Create HTTP handlers for auth and sync endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	syncHandler := &http.SyncHandler{SyncService: syncService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, syncHandler, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		if options.TLSCert != "" {
			server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port), zap.String("storage", options.Storage))
			serveErr <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port), zap.String("storage", options.Storage))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore builds the backend selected by options. SQL backends get a
// background pinger that logs outages.
func openStore(ctx context.Context, options *config.Options, log *zap.Logger) (kv.Store, io.Closer, error) {
	switch options.Storage {
	case config.StorageBolt:
		s, err := kv.OpenBolt(options.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StorageSQLite:
		conn, err := db.InitSQLite(options.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		db.StartPinger(ctx, conn, 30*time.Second, log)
		return kv.NewSQLStore(conn, kv.SQLite), conn, nil
	case config.StoragePostgres:
		conn, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		db.StartPinger(ctx, conn, 30*time.Second, log)
		return kv.NewSQLStore(conn, kv.Postgres), conn, nil
	default:
		return kv.NewMemoryStore(), nopCloser{}, nil
	}
}
