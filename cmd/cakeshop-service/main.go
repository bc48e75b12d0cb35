package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/money"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/products"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/sequence"
)

type publisher interface {
	httpapi.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	menu, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("load catalog", zap.String("file", cfg.CatalogFile), zap.Error(err))
	}

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	// --- AMQP ---
	var pub publisher = events.NopPublisher{}
	if cfg.EventsEnabled {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal("rabbitmq connect", zap.Error(err))
		}
		defer conn.Close()

		p, err := events.NewPublisher(conn, events.PublisherOptions{
			Sequencer: sequence.NewRepository(pool),
			Logger:    logger.Named("events"),
		})
		if err != nil {
			logger.Fatal("create publisher", zap.Error(err))
		}
		pub = p
	} else {
		logger.Info("event publishing disabled")
	}
	defer func() { _ = pub.Close() }()

	// --- HTTP ---
	h := httpapi.NewHandler(httpapi.Deps{
		Catalog:         menu,
		Products:        products.NewPostgresRepository(pool),
		Store:           cart.NewStore(),
		Publisher:       pub,
		Formatter:       money.NewFormatter(cfg.Locale, cfg.CurrencySymbol),
		CustomCakeImage: cfg.CustomCakeImage,
		Logger:          logger.Named("http"),
	})
	r := httpapi.NewRouter(h, httpapi.RouterOptions{
		Logger:           logger.Named("access"),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()

	logger.Info("shutdown complete")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	return zc.Build()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.Load(f)
}
