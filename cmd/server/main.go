package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gemvault/storefront/config"
	httpDelivery "github.com/gemvault/storefront/internal/delivery/http"
	"github.com/gemvault/storefront/internal/domain"
	"github.com/gemvault/storefront/internal/infrastructure/cache"
	"github.com/gemvault/storefront/internal/infrastructure/products"
	"github.com/gemvault/storefront/internal/logging"
	"github.com/gemvault/storefront/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting storefront",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("session_store", cfg.Session.Store),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// Initialize infrastructure dependencies
	store, err := newPageStore(ctx, cfg.Session, logger)
	if err != nil {
		return err
	}
	defer closePageStore(store, logger)

	productClient := products.NewClient(products.ClientConfig{
		BaseURL:           cfg.Upstream.BaseURL,
		Timeout:           cfg.Upstream.Timeout,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
		Burst:             cfg.Upstream.Burst,
	}, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpDelivery.NewMetrics(registry)

	// Initialize usecase layer
	pages := usecase.NewPageService(store, productClient, logger, usecase.PageServiceConfig{
		PageTTL: cfg.Session.TTL,
	})
	pages.SetFetchObserver(metrics.ObserveFetch)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pages, logger)
	router := httpDelivery.SetupRouter(cfg, handler, metrics, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// pageStore is a page repository that holds resources until closed
type pageStore interface {
	domain.PageRepository
	io.Closer
}

// newPageStore builds the configured page session store
func newPageStore(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (pageStore, error) {
	switch cfg.Store {
	case "redis":
		store, err := cache.NewRedisPageStore(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			closePageStore(store, logger)
			return nil, err
		}
		return store, nil
	default:
		return cache.NewMemoryPageStore(cache.DefaultCleanupInterval), nil
	}
}

// closePageStore releases a page store, logging a failure
func closePageStore(store io.Closer, logger *zap.Logger) {
	if err := store.Close(); err != nil {
		logger.Warn("closing page store", zap.Error(err))
	}
}
