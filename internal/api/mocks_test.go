package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/progress"
	"github.com/wordvault/wordvault-api/internal/service"
)

// mockCardService implements service.CardService with injectable behavior.
type mockCardService struct {
	createOrReviewFn  func(ctx context.Context, userID uuid.UUID, input domain.CardInput) (*domain.Card, bool, error)
	getCardFn         func(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)
	listCardsFn       func(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*domain.Card, error)
	listDueCardsFn    func(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)
	updateCardFn      func(ctx context.Context, userID, cardID uuid.UUID, patch domain.CardPatch) (*domain.Card, error)
	deleteCardFn      func(ctx context.Context, userID, cardID uuid.UUID) error
	reviewCardFn      func(ctx context.Context, userID, cardID uuid.UUID, quality int) (*domain.Card, error)
	listPublicCardsFn func(ctx context.Context, username string, limit, offset int) ([]*domain.Card, error)
}

var _ service.CardService = (*mockCardService)(nil)

func (m *mockCardService) CreateOrReview(
	ctx context.Context,
	userID uuid.UUID,
	input domain.CardInput,
) (*domain.Card, bool, error) {
	return m.createOrReviewFn(ctx, userID, input)
}

func (m *mockCardService) GetCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	return m.getCardFn(ctx, userID, cardID)
}

func (m *mockCardService) ListCards(
	ctx context.Context,
	userID uuid.UUID,
	publicOnly bool,
) ([]*domain.Card, error) {
	return m.listCardsFn(ctx, userID, publicOnly)
}

func (m *mockCardService) ListDueCards(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Card, error) {
	return m.listDueCardsFn(ctx, userID)
}

func (m *mockCardService) UpdateCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	patch domain.CardPatch,
) (*domain.Card, error) {
	return m.updateCardFn(ctx, userID, cardID, patch)
}

func (m *mockCardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	return m.deleteCardFn(ctx, userID, cardID)
}

func (m *mockCardService) ReviewCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	quality int,
) (*domain.Card, error) {
	return m.reviewCardFn(ctx, userID, cardID, quality)
}

func (m *mockCardService) ListPublicCards(
	ctx context.Context,
	username string,
	limit, offset int,
) ([]*domain.Card, error) {
	return m.listPublicCardsFn(ctx, username, limit, offset)
}

// mockProgressService implements service.ProgressService.
type mockProgressService struct {
	summaryFn func(ctx context.Context, userID uuid.UUID) (*progress.Summary, error)
}

var _ service.ProgressService = (*mockProgressService)(nil)

func (m *mockProgressService) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (*progress.Summary, error) {
	return m.summaryFn(ctx, userID)
}
