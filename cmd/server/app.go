package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wordvault/wordvault-api/internal/config"
	"github.com/wordvault/wordvault-api/internal/domain/progress"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
	"github.com/wordvault/wordvault-api/internal/platform/postgres"
	"github.com/wordvault/wordvault-api/internal/service"
	"github.com/wordvault/wordvault-api/internal/service/auth"
	"github.com/wordvault/wordvault-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore store.UserStore
	cardStore store.CardStore

	// Services
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	srsService       srs.Service
	cardService      service.CardService
	progressService  service.ProgressService
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logger, and database connection must already
// be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	app.srsService = srs.NewDefaultService()

	reviewMode, err := srs.ParseMode(cfg.Review.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid review algorithm %q: %w", cfg.Review.Algorithm, err)
	}

	app.cardService, err = service.NewCardService(
		db,
		app.cardStore,
		app.userStore,
		app.srsService,
		reviewMode,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	app.progressService, err = service.NewProgressService(
		app.cardStore,
		progress.NewCalculator(app.srsService),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
