package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/progress"
	"github.com/wordvault/wordvault-api/internal/platform/logger"
	"github.com/wordvault/wordvault-api/internal/store"
)

// ProgressService computes learning statistics over a user's collection.
type ProgressService interface {
	// Summary loads the user's cards and aggregates them into a progress
	// summary evaluated at the current time.
	Summary(ctx context.Context, userID uuid.UUID) (*progress.Summary, error)
}

// progressServiceImpl implements the ProgressService interface
type progressServiceImpl struct {
	cardStore  store.CardStore
	calculator *progress.Calculator
	logger     *slog.Logger
}

// NewProgressService creates a new ProgressService.
// It returns an error if any of the required dependencies are nil.
func NewProgressService(
	cardStore store.CardStore,
	calculator *progress.Calculator,
	logger *slog.Logger,
) (ProgressService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if calculator == nil {
		return nil, domain.NewValidationError("calculator", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		cardStore:  cardStore,
		calculator: calculator,
		logger:     logger.With(slog.String("component", "progress_service")),
	}, nil
}

// Ensure progressServiceImpl implements ProgressService interface
var _ ProgressService = (*progressServiceImpl)(nil)

// Summary implements ProgressService.Summary
func (s *progressServiceImpl) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (*progress.Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListByUser(ctx, userID, false)
	if err != nil {
		log.Error("failed to load cards for progress summary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	return s.calculator.Compute(cards, time.Now().UTC()), nil
}
