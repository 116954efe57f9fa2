package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/platform/logger"
	"github.com/wordvault/wordvault-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database, handling domain validation.
// Returns store.ErrEmailExists or store.ErrUsernameExists on unique violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, email, username, hashed_password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Username,
		user.HashedPassword,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dupErr := mapUserUniqueViolation(err); dupErr != nil {
			log.Warn("duplicate user during creation",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return dupErr
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "exec failed", err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
// It retrieves a user by their unique ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, username, hashed_password, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.queryRow(ctx, log, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
// It retrieves a user by their email address.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, username, hashed_password, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.queryRow(ctx, log, query, email)
}

// GetByUsername implements store.UserStore.GetByUsername
// It retrieves a user by their username.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, username, hashed_password, is_active, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return s.queryRow(ctx, log, query, username)
}

// Update implements store.UserStore.Update
// It modifies an existing user's details.
// Returns store.ErrUserNotFound if the user does not exist and
// store.ErrEmailExists/store.ErrUsernameExists on unique violations.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $1, username = $2, hashed_password = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.Username,
		user.HashedPassword,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if dupErr := mapUserUniqueViolation(err); dupErr != nil {
			log.Warn("duplicate user during update",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return dupErr
		}

		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "update", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "update", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("user not found for update",
			slog.String("user_id", user.ID.String()))
		return store.ErrUserNotFound
	}

	log.Info("user updated successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// Delete implements store.UserStore.Delete
// It removes a user from the database by their ID. Owned cards are removed
// by the ON DELETE CASCADE constraint on the cards table.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM users
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return store.NewStoreError("user", "delete", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return store.NewStoreError("user", "delete", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("user not found for delete",
			slog.String("user_id", id.String()))
		return store.ErrUserNotFound
	}

	log.Info("user deleted successfully",
		slog.String("user_id", id.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx
// It returns a new UserStore that uses the provided transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryRow runs a single-row user query and maps sql.ErrNoRows onto
// store.ErrUserNotFound.
func (s *PostgresUserStore) queryRow(
	ctx context.Context,
	log *slog.Logger,
	query string,
	arg interface{},
) (*domain.User, error) {
	var user domain.User

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "query failed", err)
	}

	return &user, nil
}

// mapUserUniqueViolation turns a unique-constraint violation on the users
// table into the matching store sentinel, keyed on the constraint name.
// Returns nil for any other error.
func mapUserUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return nil
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return fmt.Errorf("%w: %s", store.ErrEmailExists, pgErr.ConstraintName)
	case strings.Contains(pgErr.ConstraintName, "username"):
		return fmt.Errorf("%w: %s", store.ErrUsernameExists, pgErr.ConstraintName)
	default:
		return fmt.Errorf("%w: %s", store.ErrDuplicate, pgErr.ConstraintName)
	}
}
