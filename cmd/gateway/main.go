package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/tracksync/internal/api/rest"
	"github.com/clintrovert/tracksync/internal/asana"
	"github.com/clintrovert/tracksync/internal/config"
	"github.com/clintrovert/tracksync/internal/gateway"
	"github.com/clintrovert/tracksync/internal/store"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	// Get configuration from environment
	env, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Create store and tracker clients
	storeClient := store.NewClient(env.StoreURL, env.StoreServiceKey, logger)
	trackerClient := asana.NewClient(env.AsanaAPIURL, logger)

	// Create gateway service and REST handler
	svc := gateway.NewService(storeClient, trackerClient, env.AsanaAppURL, env.IntegrationType, logger)
	handler := rest.NewHandler(svc, logger)

	addr := fmt.Sprintf(":%s", env.HTTPPort)
	server := &http.Server{
		Addr:    addr,
		Handler: rest.NewRouter(handler),
	}

	go func() {
		logger.Info("starting gateway server", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
