package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
)

// UpsertReview carries the precomputed scheduling values applied when a
// create collides with an existing (user, front text) card. The review
// count increment itself happens inside the store's single upsert
// statement so concurrent submissions cannot lose counts.
type UpsertReview struct {
	LastReviewedAt time.Time
	NextReviewAt   time.Time
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// CreateOrReview inserts the card. When a card with the same
	// (user, front text) already exists it records a review on the existing
	// row instead: review count incremented by one and the scheduling
	// fields set from onConflict. The duplicate is resolved by the unique
	// index in a single upsert statement, never surfaced as an error.
	// Returns the stored card and whether a new row was created.
	CreateOrReview(
		ctx context.Context,
		card *domain.Card,
		onConflict UpsertReview,
	) (*domain.Card, bool, error)

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByUser retrieves all of a user's cards ordered by creation time
	// descending, optionally restricted to public ones.
	// Returns an empty slice when the user has no matching cards.
	ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*domain.Card, error)

	// ListPublicByUser retrieves a page of a user's public cards ordered by
	// creation time descending.
	ListPublicByUser(
		ctx context.Context,
		userID uuid.UUID,
		limit, offset int,
	) ([]*domain.Card, error)

	// Update persists the card's editable fields (texts, example, language,
	// difficulty, visibility).
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// UpdateReview persists the scheduling fields computed by the scheduler
	// for the given card. Last write wins under concurrent reviews.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateReview(ctx context.Context, id uuid.UUID, state srs.ReviewState) error

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardStore
}
