package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/swipefeed/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("Backend configuration",
		"base_url", cfg.Backend.BaseURL,
		"token_present", cfg.Backend.Token != "",
		"timeout", cfg.Backend.Timeout,
		"max_retries", cfg.Backend.MaxRetries)

	return cfg, nil
}
