package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookshelf/internal/metrics"
	bookrepo "github.com/kailas-cloud/bookshelf/internal/repository/book"
	searchrepo "github.com/kailas-cloud/bookshelf/internal/repository/search"
	chiTransport "github.com/kailas-cloud/bookshelf/internal/transport/chi"
	bookuc "github.com/kailas-cloud/bookshelf/internal/usecase/book"
	healthuc "github.com/kailas-cloud/bookshelf/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
	"github.com/kailas-cloud/bookshelf/internal/version"
)

func newServeCommand(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()
			if port > 0 {
				a.cfg.HTTP.Port = port
			}
			return serve(cmd.Context(), a)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override http.port from the config file")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	cfg, logger := a.cfg, a.logger

	logger.Info("Starting bookshelf API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	ks := cfg.Keyspace()
	books := bookrepo.New(store, ks)
	if cfg.Index.EnsureOnStart {
		created, err := books.EnsureIndex(ctx)
		if err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
		logger.Info("Index ready", zap.String("index", ks.IndexName()), zap.Bool("created", created))
	}

	search := searchuc.NewInstrumentedRepository(searchrepo.New(store, ks), logger)

	server := chiTransport.NewServer(
		bookuc.New(books),
		searchuc.New(search),
		healthuc.New(store, books),
		logger,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
