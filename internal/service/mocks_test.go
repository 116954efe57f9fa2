package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
	"github.com/wordvault/wordvault-api/internal/store"
)

// mockCardStore implements store.CardStore with injectable behavior.
// withTxCalled records whether a caller asked for a tx-bound store.
type mockCardStore struct {
	withTxCalled       bool
	createOrReviewFn   func(ctx context.Context, card *domain.Card, onConflict store.UpsertReview) (*domain.Card, bool, error)
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	listByUserFn       func(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*domain.Card, error)
	listPublicByUserFn func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Card, error)
	updateFn           func(ctx context.Context, card *domain.Card) error
	updateReviewFn     func(ctx context.Context, id uuid.UUID, state srs.ReviewState) error
	deleteFn           func(ctx context.Context, id uuid.UUID) error
}

var _ store.CardStore = (*mockCardStore)(nil)

func (m *mockCardStore) CreateOrReview(
	ctx context.Context,
	card *domain.Card,
	onConflict store.UpsertReview,
) (*domain.Card, bool, error) {
	return m.createOrReviewFn(ctx, card, onConflict)
}

func (m *mockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockCardStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	publicOnly bool,
) ([]*domain.Card, error) {
	return m.listByUserFn(ctx, userID, publicOnly)
}

func (m *mockCardStore) ListPublicByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Card, error) {
	return m.listPublicByUserFn(ctx, userID, limit, offset)
}

func (m *mockCardStore) Update(ctx context.Context, card *domain.Card) error {
	return m.updateFn(ctx, card)
}

func (m *mockCardStore) UpdateReview(
	ctx context.Context,
	id uuid.UUID,
	state srs.ReviewState,
) error {
	return m.updateReviewFn(ctx, id, state)
}

func (m *mockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	m.withTxCalled = true
	return m
}

// mockUserStore implements store.UserStore with injectable behavior.
type mockUserStore struct {
	createFn        func(ctx context.Context, user *domain.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	updateFn        func(ctx context.Context, user *domain.User) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(ctx, user)
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
