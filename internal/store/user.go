package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext never reaches the store.
	// Returns ErrEmailExists or ErrUsernameExists on unique violations.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update modifies an existing user's details. The caller provides a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists/ErrUsernameExists on unique violations.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID. Owned cards are
	// removed by the schema-level cascade.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
