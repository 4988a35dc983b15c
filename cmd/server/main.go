package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnmatch/internal/app"
	"learnmatch/internal/config"
	"learnmatch/internal/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	lg = logger.WithFields(lg, zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			lg.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		lg.Fatal("invalid HTTP port", zap.Error(err))
	}

	bootstrap.StartBackground(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	lg.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			lg.Warn("shutdown error", zap.Error(err))
		}
		lg.Info("server stopped")
	}
}
