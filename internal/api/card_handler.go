package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wordvault/wordvault-api/internal/api/shared"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/service"
)

// Query parameter defaults for public card listings.
const (
	defaultPublicPageLimit = 20
	maxPublicPageLimit     = 100
)

// CardHandler handles card-related API requests.
type CardHandler struct {
	cardService     service.CardService
	progressService service.ProgressService
}

// NewCardHandler creates a new CardHandler with the given dependencies.
func NewCardHandler(
	cardService service.CardService,
	progressService service.ProgressService,
) *CardHandler {
	return &CardHandler{
		cardService:     cardService,
		progressService: progressService,
	}
}

// CreateCard handles POST /api/cards.
// Submitting a front text the user already has records a review on the
// existing card instead of failing; the response status tells the two
// apart (201 created, 200 reviewed).
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, created, err := h.cardService.CreateOrReview(r.Context(), userID, req.Input())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	shared.RespondWithJSON(w, r, status, NewCardResponse(card))
}

// ListCards handles GET /api/cards.
// The public_only query parameter restricts the listing to public cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), userID, queryBool(r, "public_only"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardListResponse(cards))
}

// ListDueCards handles GET /api/cards/due.
func (h *CardHandler) ListDueCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	cards, err := h.cardService.ListDueCards(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardListResponse(cards))
}

// GetCard handles GET /api/cards/{id}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// UpdateCard handles PUT /api/cards/{id}.
// Only the fields present in the payload are changed.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), userID, cardID, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReviewCard handles POST /api/cards/{id}/review.
func (h *CardHandler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.ReviewCard(r.Context(), userID, cardID, *req.Quality)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// GetStats handles GET /api/stats.
func (h *CardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	summary, err := h.progressService.Summary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// ListUserPublicCards handles GET /api/users/{username}/cards.
// This endpoint is unauthenticated; it only ever exposes public cards.
func (h *CardHandler) ListUserPublicCards(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username is required")
		return
	}

	limit := queryInt(r, "limit", defaultPublicPageLimit)
	if limit < 1 || limit > maxPublicPageLimit {
		limit = defaultPublicPageLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	cards, err := h.cardService.ListPublicCards(r.Context(), username, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardListResponse(cards))
}
