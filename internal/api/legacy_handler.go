package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/api/shared"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/service"
)

// LegacyHandler serves the pre-authentication API surface kept for old
// clients. The owning user arrives as a user_id query parameter instead of
// a bearer token; everything else shares the card service.
type LegacyHandler struct {
	cardService     service.CardService
	progressService service.ProgressService
}

// NewLegacyHandler creates a new LegacyHandler with the given dependencies.
func NewLegacyHandler(
	cardService service.CardService,
	progressService service.ProgressService,
) *LegacyHandler {
	return &LegacyHandler{
		cardService:     cardService,
		progressService: progressService,
	}
}

// CreateCard handles POST /api/legacy/cards?user_id=.
func (h *LegacyHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
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

// ReviewCard handles POST /api/legacy/cards/{id}/review?user_id=.
func (h *LegacyHandler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
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

// GetStats handles GET /api/legacy/stats?user_id=.
func (h *LegacyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.progressService.Summary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

func (h *LegacyHandler) queryUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "user_id query parameter is required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		HandleAPIError(w, r,
			domain.NewValidationError("user_id", "has invalid format", domain.ErrInvalidID), "")
		return uuid.Nil, false
	}

	return userID, true
}
