package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soundhub/internal/auth"
	"soundhub/internal/config"
	"soundhub/internal/database"
	"soundhub/internal/handler"
	"soundhub/internal/mail"
	"soundhub/internal/realtime"
	"soundhub/internal/repository"
	"soundhub/internal/router"
	"soundhub/internal/service"
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
	logger.Info().Msg("starting soundhub API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(pool, logger)
	employeeRepo := repository.NewEmployeeRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	variantRepo := repository.NewVariantRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)
	messageRepo := repository.NewMessageRepository(pool, logger)

	// Initialize outbound mail with a no-op fallback
	var mailer mail.Mailer
	if cfg.SMTP.Enabled {
		mailer = mail.NewSMTPMailer(cfg.SMTP, logger)
	} else {
		mailer = mail.NewNoopMailer(logger)
		logger.Info().Msg("outbound email disabled, receipts will be logged only")
	}

	// Initialize realtime layer
	registry := realtime.NewRegistry()
	notifier := realtime.NewNotifier(registry, notificationRepo, logger)
	relay := realtime.NewRelay(registry, messageRepo, employeeRepo, customerRepo, notifier, logger)
	hub := realtime.NewHub(registry, relay, notificationRepo, logger)

	// Initialize token issuer
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, customerRepo, variantRepo, couponRepo, notifier, mailer, logger)
	authService := service.NewAuthService(employeeRepo, customerRepo, issuer, logger)
	couponService := service.NewCouponService(couponRepo, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	couponHandler := handler.NewCouponHandler(couponService, logger)

	// Initialize router
	mux := router.New(orderHandler, authHandler, couponHandler, hub, issuer, logger)

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
