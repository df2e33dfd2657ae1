package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-gol-torus/utils"
)

const configFile = "config.json"

func main() {
	// Use a minimal logger until the configured level is known.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	config, err := utils.LoadConfig(configFile)
	if err != nil {
		slog.Error("failed to load configuration", "file", configFile, "error", err)
		os.Exit(1)
	}

	level, _ := config.SlogLevel() // validated by LoadConfig
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, os.Stdout, config, logger); err != nil {
		logger.Error("game stopped", "error", err)
		os.Exit(1)
	}
}
