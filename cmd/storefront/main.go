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

	"github.com/jafarshop/storefront/internal/api"
	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/repository/sqlite"
	"github.com/jafarshop/storefront/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Open the session store
	db, err := sqlite.NewConnection(cfg.Store)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}
	defer db.Close()

	sessionID, err := sqlite.EnsureSession(db)
	if err != nil {
		logger.Fatal("Failed to establish session", zap.Error(err))
	}

	repos := sqlite.NewRepositories(db, logger)
	sess := session.New(sessionID, repos.Credential, logger)

	// Shared cart store, restored for the session
	store := cart.NewStore(context.Background(), cfg.Pricing, sessionID, repos.Cart, logger)

	// Remote API clients
	client := backend.NewClient(cfg.Backend, logger)
	orders := backend.NewOrdersClient(client, logger)
	auth := backend.NewAuthClient(client, logger)
	catalog := backend.NewCatalogClient(client, logger)

	// Checkout orchestrator
	nav := checkout.NewLogNavigator(logger)
	orch := checkout.New(store, orders, sess, nav, logger)

	router := api.NewRouter(cfg, store, orch, auth, catalog, sess, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Storefront listening",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("session_id", sessionID.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
