package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltshop/internal/cart"
	"voltshop/internal/config"
	"voltshop/internal/database"
	"voltshop/internal/handler"
	"voltshop/internal/notify"
	"voltshop/internal/ordernum"
	"voltshop/internal/pricing"
	"voltshop/internal/repository"
	"voltshop/internal/router"
	"voltshop/internal/service"

	"github.com/redis/go-redis/v9"
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
	logger.Info().Msg("starting voltshop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize cart store backed by Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	carts, err := cart.NewRedisStore(ctx, redisClient, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize notification template loader with S3 and local fallback
	fileLoader := notify.NewFileLoader(cfg.Notify.TemplateDir, logger)
	var templateLoader notify.Loader = fileLoader

	if cfg.Notify.S3.Enabled {
		s3Loader, err := notify.NewS3Loader(ctx, cfg.Notify.S3.Bucket, cfg.Notify.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 template loader, falling back to local file system only")
		} else {
			templateLoader = notify.NewFallbackLoader(s3Loader, fileLoader, cfg.Notify.S3.Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for notification templates (S3 disabled)")
	}

	// Assemble notification sinks
	var sinks []notify.Sink
	if cfg.Notify.Enabled {
		if cfg.Notify.EmailEndpoint != "" {
			sinks = append(sinks, notify.NewEmailSink(
				cfg.Notify.EmailEndpoint,
				cfg.Notify.EmailAPIKey,
				cfg.Notify.EmailFrom,
				templateLoader,
				logger,
			))
		}
		if cfg.Notify.WhatsAppEndpoint != "" {
			sinks = append(sinks, notify.NewWhatsAppSink(
				cfg.Notify.WhatsAppEndpoint,
				cfg.Notify.WhatsAppToken,
				templateLoader,
				logger,
			))
		}
	}

	// Initialize services
	pricer := pricing.NewCalculator(cfg.Pricing.TaxRate, cfg.Pricing.ShippingFee)
	identityService := service.NewIdentityService(customerRepo, logger)
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(
		orderRepo,
		productRepo,
		identityService,
		pricer,
		ordernum.NewTimestampGenerator(),
		carts,
		sinks,
		logger,
	)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(productHandler, orderHandler, cfg.Auth.APIKey, logger)

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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
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
