package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopdesk/internal/catalog"
	"shopdesk/internal/config"
	"shopdesk/internal/database"
	"shopdesk/internal/handler"
	"shopdesk/internal/middleware"
	"shopdesk/internal/repository"
	"shopdesk/internal/router"
	"shopdesk/internal/service"
	"shopdesk/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopdesk API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	// Catalog loading tries S3 first when enabled, then the local file system
	fileLoader := catalog.NewFileLoader(logger)
	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		s3Loader, err = catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
	} else {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
	}
	catalogLoader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	importer := catalog.NewImporter(productRepo, logger)

	if err := catalog.Seed(ctx, catalogLoader, importer, cfg.Catalog.SeedFiles, logger); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	// Initialize services
	productService := service.NewProductService(productRepo, reportRepo, logger)
	customerService := service.NewCustomerService(customerRepo, orderRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, logger)
	reportService := service.NewReportService(reportRepo, logger)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
		go rateLimiter.Run(ctx)
	}

	// Initialize router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, importer, logger),
		Customer: handler.NewCustomerHandler(customerService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Report:   handler.NewReportHandler(reportService, logger),
	}, router.Options{
		APIKey:      cfg.Auth.APIKey,
		ServiceName: cfg.Tracing.ServiceName,
		RateLimiter: rateLimiter,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
