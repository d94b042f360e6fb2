// Package main implements the entry point for the Learn-Better generation
// server, which turns study requests into validated quiz items and
// flashcards over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "learn-better server: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, wires the application and
// serves until SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"models", cfg.LLM.Models,
		"credentials", len(cfg.LLM.APIKeys),
		"auth_enabled", cfg.Auth.Enabled())

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.startHTTPServer(ctx, app.setupRouter())
}
