package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
	"github.com/wordvault/wordvault-api/internal/platform/logger"
	"github.com/wordvault/wordvault-api/internal/store"
)

// CardService provides card-related operations scoped to an owning user.
type CardService interface {
	// CreateOrReview creates a card for the user, or, when the user already
	// has a card with the same front text, records a simple-mode review on
	// the existing card instead. Returns the stored card and whether it was
	// newly created.
	CreateOrReview(ctx context.Context, userID uuid.UUID, input domain.CardInput) (*domain.Card, bool, error)

	// GetCard retrieves a card owned by the user.
	// Returns ErrNotOwned if the card belongs to someone else.
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// ListCards retrieves the user's cards, newest first, optionally
	// restricted to public ones.
	ListCards(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*domain.Card, error)

	// ListDueCards retrieves the user's cards that are due for review now.
	ListDueCards(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// UpdateCard applies a partial update to a card owned by the user and
	// returns the updated card.
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, patch domain.CardPatch) (*domain.Card, error)

	// DeleteCard removes a card owned by the user.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error

	// ReviewCard records a quality-scored review (0..5) on a card owned by
	// the user, using the configured review algorithm, and returns the
	// updated card.
	ReviewCard(ctx context.Context, userID, cardID uuid.UUID, quality int) (*domain.Card, error)

	// ListPublicCards retrieves a page of the named user's public cards.
	// Returns store.ErrUserNotFound for an unknown username.
	ListPublicCards(ctx context.Context, username string, limit, offset int) ([]*domain.Card, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	db         *sql.DB
	cardStore  store.CardStore
	userStore  store.UserStore
	srsService srs.Service
	reviewMode srs.Mode
	logger     *slog.Logger
}

// NewCardService creates a new CardService. The reviewMode selects the
// algorithm applied by ReviewCard; the create-or-review path always uses
// the simple mode.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	db *sql.DB,
	cardStore store.CardStore,
	userStore store.UserStore,
	srsService srs.Service,
	reviewMode srs.Mode,
	logger *slog.Logger,
) (CardService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if srsService == nil {
		return nil, domain.NewValidationError("srsService", "cannot be nil", domain.ErrValidation)
	}
	if reviewMode != srs.ModeQuality && reviewMode != srs.ModeSM2 {
		return nil, domain.NewValidationError(
			"reviewMode", "must be quality or sm2", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		db:         db,
		cardStore:  cardStore,
		userStore:  userStore,
		srsService: srsService,
		reviewMode: reviewMode,
		logger:     logger.With(slog.String("component", "card_service")),
	}, nil
}

// Ensure cardServiceImpl implements CardService interface
var _ CardService = (*cardServiceImpl)(nil)

// CreateOrReview implements CardService.CreateOrReview
// The conflict arm's scheduling values are computed here with the simple
// algorithm; the review count increment itself happens inside the store's
// upsert so concurrent submissions of the same word cannot lose counts.
func (s *cardServiceImpl) CreateOrReview(
	ctx context.Context,
	userID uuid.UUID,
	input domain.CardInput,
) (*domain.Card, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(userID, input)
	if err != nil {
		log.Warn("invalid card input",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, false, err
	}

	now := time.Now().UTC()
	reviewed, err := s.srsService.ApplyReview(
		srs.StateFromCard(card), 0, srs.ModeSimple, now)
	if err != nil {
		return nil, false, NewCardServiceError(
			"create", "failed to compute conflict review schedule", err)
	}

	stored, created, err := s.cardStore.CreateOrReview(ctx, card, store.UpsertReview{
		LastReviewedAt: now,
		NextReviewAt:   reviewed.NextReviewAt,
	})
	if err != nil {
		log.Error("failed to create or review card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, false, fmt.Errorf("failed to create card: %w", err)
	}

	return stored, created, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	return s.getOwnedCard(ctx, s.cardStore, userID, cardID)
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(
	ctx context.Context,
	userID uuid.UUID,
	publicOnly bool,
) ([]*domain.Card, error) {
	cards, err := s.cardStore.ListByUser(ctx, userID, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// ListDueCards implements CardService.ListDueCards
// Due-ness is evaluated lazily against the creation-anchored schedule;
// nothing in the database marks a card as due.
func (s *cardServiceImpl) ListDueCards(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Card, error) {
	cards, err := s.cardStore.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	now := time.Now().UTC()
	due := make([]*domain.Card, 0)
	for _, card := range cards {
		if s.srsService.IsDue(card.CreatedAt, card.ReviewCount, now) {
			due = append(due, card)
		}
	}
	return due, nil
}

// UpdateCard implements CardService.UpdateCard
// The patch only touches editable fields; scheduling state is owned by
// the review paths.
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	patch domain.CardPatch,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.getOwnedCard(ctx, s.cardStore, userID, cardID)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(card); err != nil {
		log.Warn("invalid card patch",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if _, err := s.getOwnedCard(ctx, s.cardStore, userID, cardID); err != nil {
		return err
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// ReviewCard implements CardService.ReviewCard
// The read-modify-write runs in a single transaction against a tx-bound
// store so the ownership check and the schedule write see the same row.
func (s *cardServiceImpl) ReviewCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	quality int,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var card *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cardStore.WithTx(tx)

		var err error
		card, err = s.getOwnedCard(ctx, txCards, userID, cardID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		state, err := s.srsService.ApplyReview(srs.StateFromCard(card), quality, s.reviewMode, now)
		if err != nil {
			log.Warn("review rejected",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()),
				slog.Int("quality", quality))
			return err
		}

		if err := txCards.UpdateReview(ctx, cardID, state); err != nil {
			log.Error("failed to persist review",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()))
			return fmt.Errorf("failed to persist review: %w", err)
		}

		state.ApplyToCard(card)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("card reviewed",
		slog.String("card_id", cardID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("quality", quality),
		slog.Int("review_count", card.ReviewCount))
	return card, nil
}

// ListPublicCards implements CardService.ListPublicCards
func (s *cardServiceImpl) ListPublicCards(
	ctx context.Context,
	username string,
	limit, offset int,
) ([]*domain.Card, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}

	cards, err := s.cardStore.ListPublicByUser(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list public cards: %w", err)
	}
	return cards, nil
}

// getOwnedCard loads a card and verifies the requesting user owns it.
// Returns ErrNotOwned on an ownership mismatch so the API layer can
// distinguish 403 from 404.
func (s *cardServiceImpl) getOwnedCard(
	ctx context.Context,
	cards store.CardStore,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, err := cards.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if card.UserID != userID {
		return nil, ErrNotOwned
	}

	return card, nil
}
