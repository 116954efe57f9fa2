// Package main implements the entry point for the WordVault API server,
// a vocabulary flashcard service with spaced repetition scheduling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/wordvault/wordvault-api/internal/config"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// run loads configuration, wires dependencies, and either executes a
// migration command or starts the HTTP server.
func run(ctx context.Context, migrateCmd string) error {
	// A missing .env file is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"review_algorithm", cfg.Review.Algorithm)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return runMigrations(db, migrateCmd, appLogger)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
