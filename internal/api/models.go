package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/wordvault/wordvault-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Username is echoed back so clients can display it without a second call
	Username string `json:"username"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateCardRequest defines the payload for creating (or re-submitting) a card.
type CreateCardRequest struct {
	FrontText  string `json:"front_text" validate:"required,max=200"`
	BackText   string `json:"back_text"  validate:"required,max=200"`
	Example    string `json:"example"    validate:"max=500"`
	Language   string `json:"language"`
	Difficulty int    `json:"difficulty" validate:"omitempty,gte=1,lte=5"`
	IsPublic   bool   `json:"is_public"`
}

// Input converts the request to a domain card input.
func (req CreateCardRequest) Input() domain.CardInput {
	return domain.CardInput{
		FrontText:  req.FrontText,
		BackText:   req.BackText,
		Example:    req.Example,
		Language:   req.Language,
		Difficulty: req.Difficulty,
		IsPublic:   req.IsPublic,
	}
}

// UpdateCardRequest defines the payload for partially updating a card.
// Absent fields are left untouched.
type UpdateCardRequest struct {
	FrontText  *string `json:"front_text" validate:"omitempty,min=1,max=200"`
	BackText   *string `json:"back_text"  validate:"omitempty,min=1,max=200"`
	Example    *string `json:"example"    validate:"omitempty,max=500"`
	Language   *string `json:"language"   validate:"omitempty,min=1"`
	Difficulty *int    `json:"difficulty" validate:"omitempty,gte=1,lte=5"`
	IsPublic   *bool   `json:"is_public"`
}

// Patch converts the request to a domain card patch.
func (req UpdateCardRequest) Patch() domain.CardPatch {
	return domain.CardPatch{
		FrontText:  req.FrontText,
		BackText:   req.BackText,
		Example:    req.Example,
		Language:   req.Language,
		Difficulty: req.Difficulty,
		IsPublic:   req.IsPublic,
	}
}

// ReviewCardRequest defines the payload for the review endpoint.
// Quality is a pointer so an absent field is distinguishable from zero.
type ReviewCardRequest struct {
	Quality *int `json:"quality" validate:"required,gte=0,lte=5"`
}

// CardResponse defines the card representation returned by the API.
type CardResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	FrontText      string     `json:"front_text"`
	BackText       string     `json:"back_text"`
	Example        string     `json:"example,omitempty"`
	Language       string     `json:"language"`
	Difficulty     int        `json:"difficulty"`
	IsPublic       bool       `json:"is_public"`
	ReviewCount    int        `json:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   time.Time  `json:"next_review_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewCardResponse converts a domain card to its API representation.
// Scheduling internals (interval, ease factor) stay server-side.
func NewCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:             card.ID,
		UserID:         card.UserID,
		FrontText:      card.FrontText,
		BackText:       card.BackText,
		Example:        card.Example,
		Language:       card.Language,
		Difficulty:     card.Difficulty,
		IsPublic:       card.IsPublic,
		ReviewCount:    card.ReviewCount,
		LastReviewedAt: card.LastReviewedAt,
		NextReviewAt:   card.NextReviewAt,
		CreatedAt:      card.CreatedAt,
	}
}

// NewCardListResponse converts a slice of domain cards.
func NewCardListResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, NewCardResponse(card))
	}
	return out
}
