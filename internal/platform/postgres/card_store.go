package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
	"github.com/wordvault/wordvault-api/internal/platform/logger"
	"github.com/wordvault/wordvault-api/internal/store"
)

// cardColumns is the select list shared by every card query, in scan order.
const cardColumns = `id, user_id, front_text, back_text, example, language, difficulty,
		is_public, review_count, last_reviewed_at, next_review_at, interval, ease_factor,
		created_at`

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// CreateOrReview implements store.CardStore.CreateOrReview
// It inserts the card, or records a review on the existing row keyed by the
// (user_id, front_text) unique index. The entire decision happens in one
// upsert statement so two concurrent submissions of the same word cannot
// both take the insert path or lose a review count.
// The xmax system column is zero only for freshly inserted rows, which is
// how the statement reports whether it created or reviewed.
// Returns store.ErrInvalidEntity if the user ID doesn't exist.
func (s *PostgresCardStore) CreateOrReview(
	ctx context.Context,
	card *domain.Card,
	onConflict store.UpsertReview,
) (*domain.Card, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return nil, false, err
	}

	query := `
		INSERT INTO cards (id, user_id, front_text, back_text, example, language, difficulty,
			is_public, review_count, last_reviewed_at, next_review_at, interval, ease_factor,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, front_text) DO UPDATE
		SET review_count = cards.review_count + 1,
			last_reviewed_at = $15,
			next_review_at = $16
		RETURNING ` + cardColumns + `, (xmax = 0) AS inserted
	`

	var stored domain.Card
	var inserted bool

	err := s.db.QueryRowContext(
		ctx,
		query,
		card.ID,
		card.UserID,
		card.FrontText,
		card.BackText,
		card.Example,
		card.Language,
		card.Difficulty,
		card.IsPublic,
		card.ReviewCount,
		card.LastReviewedAt,
		card.NextReviewAt,
		card.Interval,
		card.EaseFactor,
		card.CreatedAt,
		onConflict.LastReviewedAt,
		onConflict.NextReviewAt,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.FrontText,
		&stored.BackText,
		&stored.Example,
		&stored.Language,
		&stored.Difficulty,
		&stored.IsPublic,
		&stored.ReviewCount,
		&stored.LastReviewedAt,
		&stored.NextReviewAt,
		&stored.Interval,
		&stored.EaseFactor,
		&stored.CreatedAt,
		&inserted,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("foreign key violation during card creation",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()),
				slog.String("user_id", card.UserID.String()))
			return nil, false, fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, card.UserID)
		}

		log.Error("failed to upsert card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("user_id", card.UserID.String()))
		return nil, false, store.NewStoreError("card", "upsert", "query failed", err)
	}

	if inserted {
		log.Info("card created successfully",
			slog.String("card_id", stored.ID.String()),
			slog.String("user_id", stored.UserID.String()))
	} else {
		log.Info("existing card reviewed on resubmission",
			slog.String("card_id", stored.ID.String()),
			slog.String("user_id", stored.UserID.String()),
			slog.Int("review_count", stored.ReviewCount))
	}
	return &stored, inserted, nil
}

// GetByID implements store.CardStore.GetByID
// It retrieves a card by its unique ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1
	`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, store.NewStoreError("card", "get", "query failed", err)
	}

	return card, nil
}

// ListByUser implements store.CardStore.ListByUser
// It retrieves all of a user's cards ordered by creation time descending,
// optionally restricted to public ones.
func (s *PostgresCardStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	publicOnly bool,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1 AND ($2 = FALSE OR is_public = TRUE)
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, publicOnly)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("card", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, store.NewStoreError("card", "list", "scan failed", err)
	}
	return cards, nil
}

// ListPublicByUser implements store.CardStore.ListPublicByUser
// It retrieves a page of a user's public cards ordered by creation time
// descending.
func (s *PostgresCardStore) ListPublicByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1 AND is_public = TRUE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list public cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("card", "list_public", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, store.NewStoreError("card", "list_public", "scan failed", err)
	}
	return cards, nil
}

// Update implements store.CardStore.Update
// It persists the card's editable fields. Scheduling fields are owned by
// UpdateReview and never touched here.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET front_text = $1, back_text = $2, example = $3, language = $4,
			difficulty = $5, is_public = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.FrontText,
		card.BackText,
		card.Example,
		card.Language,
		card.Difficulty,
		card.IsPublic,
		card.ID,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Warn("duplicate front text during card update",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return fmt.Errorf("%w: front text", store.ErrDuplicate)
		}

		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "update", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "update", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("card not found for update",
			slog.String("card_id", card.ID.String()))
		return store.ErrCardNotFound
	}

	log.Info("card updated successfully",
		slog.String("card_id", card.ID.String()))
	return nil
}

// UpdateReview implements store.CardStore.UpdateReview
// It persists the scheduling fields computed by the scheduler. Last write
// wins under concurrent reviews of the same card.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) UpdateReview(
	ctx context.Context,
	id uuid.UUID,
	state srs.ReviewState,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cards
		SET review_count = $1, interval = $2, ease_factor = $3,
			last_reviewed_at = $4, next_review_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		state.ReviewCount,
		state.Interval,
		state.EaseFactor,
		state.LastReviewedAt,
		state.NextReviewAt,
		id,
	)

	if err != nil {
		log.Error("failed to update card review state",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return store.NewStoreError("card", "update_review", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return store.NewStoreError("card", "update_review", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("card not found for review update",
			slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Info("card review state updated",
		slog.String("card_id", id.String()),
		slog.Int("review_count", state.ReviewCount))
	return nil
}

// Delete implements store.CardStore.Delete
// It removes a card from the database by its ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM cards
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return store.NewStoreError("card", "delete", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return store.NewStoreError("card", "delete", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("card not found for delete",
			slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Info("card deleted successfully",
		slog.String("card_id", id.String()))
	return nil
}

// WithTx implements store.CardStore.WithTx
// It returns a new CardStore that uses the provided transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.FrontText,
		&card.BackText,
		&card.Example,
		&card.Language,
		&card.Difficulty,
		&card.IsPublic,
		&card.ReviewCount,
		&card.LastReviewedAt,
		&card.NextReviewAt,
		&card.Interval,
		&card.EaseFactor,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func collectCards(rows *sql.Rows) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
