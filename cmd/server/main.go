package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"names_demo/internal/config"
	"names_demo/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.New()

	shutdownTracing, err := telemetry.Init(ctx, cfg)
	if err != nil {
		log.Fatalf("init telemetry: %v", err)
	}

	// Store startup failures surface here; there is no fallback store.
	app, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	logger := app.Logger()
	defer func() {
		_ = logger.Sync()
	}()

	runErr := make(chan error, 1)
	go func() {
		if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("app stopped", zap.Error(err))
			runErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", zap.Error(err))
	}

	select {
	case <-runErr:
		_ = logger.Sync()
		os.Exit(1)
	default:
	}
}
