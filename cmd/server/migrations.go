package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// migrationsDir is where the goose SQL migrations live, relative to the
// working directory the server is started from.
const migrationsDir = "migrations"

// runMigrations executes a goose migration command against the database.
// Supported commands: up, down, status.
func runMigrations(db *sql.DB, command string, appLogger *slog.Logger) error {
	// Correlate all log lines of one migration run
	migrationLogger := appLogger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("starting migration operation")

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}

	if err != nil {
		migrationLogger.Error("migration operation failed",
			"error", err,
			"duration", time.Since(startTime))
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	migrationLogger.Info("migration operation completed",
		"duration", time.Since(startTime))
	return nil
}

// slogGooseLogger adapts goose's logger interface onto slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
