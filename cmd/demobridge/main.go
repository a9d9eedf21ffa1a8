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

	"github.com/joho/godotenv"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/primary/worker"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/analyticsclient"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/crmclient"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/storefactory"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

const appName = "demobridge"

var version = "dev"

// app is everything run needs from the container.
type app struct {
	dig.In

	Router    http.Handler
	Worker    *worker.Worker
	Config    *config.Config
	Logger    *zap.Logger
	Store     *storefactory.Backend
	CRM       *crmclient.Client
	Analytics *analyticsclient.Client
	Publisher secondary.EventPublisher
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	// Root context with cancellation for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := buildContainer(ctx)
	if err != nil {
		return fmt.Errorf("building container: %w", err)
	}

	return c.Invoke(func(a app) error {
		return serve(ctx, cancel, a)
	})
}

func serve(ctx context.Context, cancel context.CancelFunc, a app) error {
	logger := a.Logger
	defer func() {
		if err := a.Publisher.Close(); err != nil {
			logger.Error("error closing order event publisher", zap.Error(err))
		}
		if err := a.Store.Close(); err != nil {
			logger.Error("error closing store", zap.Error(err))
		}
		a.CRM.Close()
		a.Analytics.Close()
		_ = logger.Sync()
	}()

	logger.Info("starting application",
		zap.String("app", appName),
		zap.String("version", version),
		zap.String("environment", a.Config.Environment),
		zap.String("http_addr", a.Config.HTTPAddr),
		zap.String("store_backend", a.Config.StoreBackend),
	)

	errCh := make(chan error, 2)

	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()

	if a.Config.ManagerRefreshInterval > 0 {
		go func() {
			errCh <- a.Worker.Run(workerCtx)
		}()
	}

	server := &http.Server{
		Addr:              a.Config.HTTPAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", a.Config.HTTPAddr))
		if srvErr := server.ListenAndServe(); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", srvErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case srvErr := <-errCh:
		if srvErr != nil && !errors.Is(srvErr, context.Canceled) {
			logger.Error("service error", zap.Error(srvErr))
			runErr = srvErr
		}
	}

	// Graceful shutdown with timeout.
	logger.Info("shutting down gracefully")
	cancel()
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return runErr
}
