package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordvault/wordvault-api/internal/api/shared"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
	"github.com/wordvault/wordvault-api/internal/service"
	"github.com/wordvault/wordvault-api/internal/store"
)

func authenticatedRequest(
	t *testing.T,
	method, target, body string,
	userID uuid.UUID,
) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func testCard(t *testing.T, userID uuid.UUID) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(userID, domain.CardInput{
		FrontText: "petrichor",
		BackText:  "the smell of rain on dry earth",
	})
	require.NoError(t, err)
	return card
}

func newCardRouter(h *CardHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/cards", h.CreateCard)
	r.Get("/api/cards", h.ListCards)
	r.Get("/api/cards/due", h.ListDueCards)
	r.Get("/api/cards/{id}", h.GetCard)
	r.Put("/api/cards/{id}", h.UpdateCard)
	r.Delete("/api/cards/{id}", h.DeleteCard)
	r.Post("/api/cards/{id}/review", h.ReviewCard)
	r.Get("/api/stats", h.GetStats)
	r.Get("/api/users/{username}/cards", h.ListUserPublicCards)
	return r
}

func TestCreateCardStatusDistinguishesCreateFromReview(t *testing.T) {
	userID := uuid.New()
	card := testCard(t, userID)

	tests := []struct {
		name       string
		created    bool
		wantStatus int
	}{
		{"new card", true, http.StatusCreated},
		{"resubmission reviews existing card", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCardService{
				createOrReviewFn: func(ctx context.Context, uid uuid.UUID, input domain.CardInput) (*domain.Card, bool, error) {
					assert.Equal(t, userID, uid)
					return card, tt.created, nil
				},
			}
			router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

			req := authenticatedRequest(t, http.MethodPost, "/api/cards",
				`{"front_text":"petrichor","back_text":"the smell of rain on dry earth"}`, userID)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp CardResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, card.ID, resp.ID)
		})
	}
}

func TestCreateCardRejectsMissingFields(t *testing.T) {
	router := newCardRouter(NewCardHandler(&mockCardService{}, &mockProgressService{}))

	req := authenticatedRequest(t, http.MethodPost, "/api/cards",
		`{"front_text":"only half"}`, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCardRequiresAuthentication(t *testing.T) {
	router := newCardRouter(NewCardHandler(&mockCardService{}, &mockProgressService{}))

	req := httptest.NewRequest(http.MethodPost, "/api/cards",
		strings.NewReader(`{"front_text":"a","back_text":"b"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCardErrorMapping(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", store.ErrCardNotFound, http.StatusNotFound},
		{"owned by someone else", service.ErrNotOwned, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCardService{
				getCardFn: func(ctx context.Context, uid, cardID uuid.UUID) (*domain.Card, error) {
					return nil, tt.err
				},
			}
			router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

			req := authenticatedRequest(
				t, http.MethodGet, "/api/cards/"+uuid.New().String(), "", userID)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetCardRejectsMalformedID(t *testing.T) {
	router := newCardRouter(NewCardHandler(&mockCardService{}, &mockProgressService{}))

	req := authenticatedRequest(t, http.MethodGet, "/api/cards/not-a-uuid", "", uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewCardQualityValidation(t *testing.T) {
	userID := uuid.New()
	card := testCard(t, userID)

	svc := &mockCardService{
		reviewCardFn: func(ctx context.Context, uid, cardID uuid.UUID, quality int) (*domain.Card, error) {
			return card, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid quality", `{"quality":4}`, http.StatusOK},
		{"zero quality is valid", `{"quality":0}`, http.StatusOK},
		{"too high", `{"quality":6}`, http.StatusBadRequest},
		{"negative", `{"quality":-1}`, http.StatusBadRequest},
		{"missing", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authenticatedRequest(t, http.MethodPost,
				"/api/cards/"+card.ID.String()+"/review", tt.body, userID)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestReviewCardMapsSchedulerRejection(t *testing.T) {
	userID := uuid.New()
	svc := &mockCardService{
		reviewCardFn: func(ctx context.Context, uid, cardID uuid.UUID, quality int) (*domain.Card, error) {
			return nil, srs.ErrInvalidQuality
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	req := authenticatedRequest(t, http.MethodPost,
		"/api/cards/"+uuid.New().String()+"/review", `{"quality":5}`, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCardPassesPatchThrough(t *testing.T) {
	userID := uuid.New()
	card := testCard(t, userID)
	var gotPatch domain.CardPatch

	svc := &mockCardService{
		updateCardFn: func(ctx context.Context, uid, cardID uuid.UUID, patch domain.CardPatch) (*domain.Card, error) {
			gotPatch = patch
			return card, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	req := authenticatedRequest(t, http.MethodPut, "/api/cards/"+card.ID.String(),
		`{"back_text":"updated","is_public":true}`, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch.BackText)
	assert.Equal(t, "updated", *gotPatch.BackText)
	require.NotNil(t, gotPatch.IsPublic)
	assert.True(t, *gotPatch.IsPublic)
	assert.Nil(t, gotPatch.FrontText)
}

func TestDeleteCardReturnsNoContent(t *testing.T) {
	userID := uuid.New()
	svc := &mockCardService{
		deleteCardFn: func(ctx context.Context, uid, cardID uuid.UUID) error {
			return nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	req := authenticatedRequest(
		t, http.MethodDelete, "/api/cards/"+uuid.New().String(), "", userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListDueCards(t *testing.T) {
	userID := uuid.New()
	due := testCard(t, userID)

	svc := &mockCardService{
		listDueCardsFn: func(ctx context.Context, uid uuid.UUID) ([]*domain.Card, error) {
			return []*domain.Card{due}, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	req := authenticatedRequest(t, http.MethodGet, "/api/cards/due", "", userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []CardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, due.ID, resp[0].ID)
}

func TestListUserPublicCardsUnknownUser(t *testing.T) {
	svc := &mockCardService{
		listPublicCardsFn: func(ctx context.Context, username string, limit, offset int) ([]*domain.Card, error) {
			return nil, store.ErrUserNotFound
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost/cards", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUserPublicCardsClampsPaging(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &mockCardService{
		listPublicCardsFn: func(ctx context.Context, username string, limit, offset int) ([]*domain.Card, error) {
			gotLimit, gotOffset = limit, offset
			return []*domain.Card{}, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, &mockProgressService{}))

	req := httptest.NewRequest(
		http.MethodGet, "/api/users/alice/cards?limit=5000&offset=-3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultPublicPageLimit, gotLimit)
	assert.Equal(t, 0, gotOffset)
}
