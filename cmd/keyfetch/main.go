package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/keyfetch/internal/app"
	"github.com/Adda-Baaj/keyfetch/internal/config"
	"github.com/Adda-Baaj/keyfetch/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "keyfetch start failed: %v\n", err)
		// only reachable through invalid KEYFETCH_* overrides; defaults always load
		os.Exit(1)
	}
}

// run only fails during bootstrap; fetch outcomes are printed, never returned.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("keyfetch starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kf, err := app.NewKeyFetch(cfg, logger.ZapLogger{}, log, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize keyfetch", "error", err)
		return err
	}

	kf.Run(ctx)
	return nil
}
