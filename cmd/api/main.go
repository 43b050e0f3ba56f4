package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/config"
	"github.com/pageza/recipe-nexus/backend/internal/app"
	"github.com/pageza/recipe-nexus/backend/internal/logger"
	"github.com/pageza/recipe-nexus/backend/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Env.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	a, err := app.New(cfg, zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			zlog.Warn("shutdown cleanup failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zlog.Info("starting recipe gateway",
		zap.String("addr", cfg.Addr()),
		zap.String("env", string(cfg.Env)),
		zap.String("version", app.Version),
	)
	return server.New(cfg.Addr(), a.Handler, cfg.ShutdownTimeout, zlog).Run(ctx)
}
