package main

import (
	"fmt"
	"log/slog"

	"github.com/wordvault/wordvault-api/internal/config"
	"github.com/wordvault/wordvault-api/internal/platform/logger"
)

// setupAppLogger configures the application logger from config settings.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{
		Level: cfg.Server.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return l, nil
}
