package main

import (
	"context"
	"fmt"
	"os"
	"time"

	infraconfig "github.com/mai-repo/Newscraper/infrastructure/config"
	"github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/infrastructure/profiling"
	"github.com/mai-repo/Newscraper/internal/api"
	"github.com/mai-repo/Newscraper/internal/app"
	"github.com/mai-repo/Newscraper/internal/config"
)

// startupTimeout bounds connecting to dependencies and applying the schema.
const startupTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if pprofServer := profiling.StartPprofServer(cfg.Profiling, log); pprofServer != nil {
		defer func() { _ = pprofServer.Close() }()
	}

	// Connect dependencies and build services
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	application, err := app.New(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("Failed to initialize", logger.Error(err))
		return 1
	}
	defer func() { _ = application.Close() }()

	// Run server
	return runServer(application)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	logCfg := cfg.Logging
	logCfg.Development = logCfg.Development || cfg.Service.Debug

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(application *app.App) int {
	cfg := application.Config
	log := application.Log

	server := api.NewServer(application.Handlers(), application.Dependencies(), cfg, log)

	log.Info("News scraper starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("target_url", cfg.Scraper.TargetURL),
	)

	if err := server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("News scraper exited cleanly")
	return 0
}
