package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front text cannot be empty")

	// ErrCardFrontTooLong is returned when a card's front text exceeds 200 characters.
	ErrCardFrontTooLong = errors.New("card front text must be at most 200 characters")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back text cannot be empty")

	// ErrCardBackTooLong is returned when a card's back text exceeds 200 characters.
	ErrCardBackTooLong = errors.New("card back text must be at most 200 characters")

	// ErrCardExampleTooLong is returned when a card's example exceeds 500 characters.
	ErrCardExampleTooLong = errors.New("card example must be at most 500 characters")

	// ErrCardDifficultyRange is returned when a card's difficulty is outside 1-5.
	ErrCardDifficultyRange = errors.New("card difficulty must be between 1 and 5")

	// ErrCardIntervalInvalid is returned when a card's interval is not positive.
	ErrCardIntervalInvalid = errors.New("card interval must be greater than 0")

	// ErrCardEaseFactorInvalid is returned when a card's ease factor is below 1.3.
	ErrCardEaseFactorInvalid = errors.New("card ease factor must be at least 1.3")

	// ErrCardReviewCountInvalid is returned when a card's review count is negative.
	ErrCardReviewCountInvalid = errors.New("card review count cannot be negative")
)

// Scheduling defaults for freshly created cards.
const (
	DefaultInterval   = 1.0
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	DefaultLanguage   = "english"
)

// Card represents a single front/back vocabulary pair owned by a user,
// with its own review schedule. At most one live card exists per
// (user, front text) pair; re-submitting the same front text counts as a
// review of the existing card rather than creating a new one.
type Card struct {
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
	Interval       float64    `json:"interval"`    // Current interval in days, always > 0
	EaseFactor     float64    `json:"ease_factor"` // Ease multiplier, clamped to >= 1.3
	CreatedAt      time.Time  `json:"created_at"`
}

// CardInput holds caller-supplied fields for creating a card.
type CardInput struct {
	FrontText  string
	BackText   string
	Example    string
	Language   string
	Difficulty int
	IsPublic   bool
}

// NewCard creates a new Card owned by the given user. Unset input fields
// receive their defaults (language "english", difficulty 1). The first
// review is scheduled one day out.
// Returns an error if validation fails.
func NewCard(userID uuid.UUID, input CardInput) (*Card, error) {
	now := time.Now().UTC()

	language := input.Language
	if language == "" {
		language = DefaultLanguage
	}
	difficulty := input.Difficulty
	if difficulty == 0 {
		difficulty = 1
	}

	card := &Card{
		ID:           uuid.New(),
		UserID:       userID,
		FrontText:    input.FrontText,
		BackText:     input.BackText,
		Example:      input.Example,
		Language:     language,
		Difficulty:   difficulty,
		IsPublic:     input.IsPublic,
		ReviewCount:  0,
		NextReviewAt: now.AddDate(0, 0, 1),
		Interval:     DefaultInterval,
		EaseFactor:   DefaultEaseFactor,
		CreatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.FrontText == "" {
		return ErrCardFrontEmpty
	}
	if len(c.FrontText) > 200 {
		return ErrCardFrontTooLong
	}

	if c.BackText == "" {
		return ErrCardBackEmpty
	}
	if len(c.BackText) > 200 {
		return ErrCardBackTooLong
	}

	if len(c.Example) > 500 {
		return ErrCardExampleTooLong
	}

	if c.Difficulty < 1 || c.Difficulty > 5 {
		return ErrCardDifficultyRange
	}

	if c.ReviewCount < 0 {
		return ErrCardReviewCountInvalid
	}

	if c.Interval <= 0 {
		return ErrCardIntervalInvalid
	}

	if c.EaseFactor < MinEaseFactor {
		return ErrCardEaseFactorInvalid
	}

	return nil
}

// CardPatch describes a partial update to a card. Each field is applied
// only when non-nil, replacing the dynamic attribute-by-attribute update
// of earlier revisions with an explicitly typed patch.
type CardPatch struct {
	FrontText  *string
	BackText   *string
	Example    *string
	Language   *string
	Difficulty *int
	IsPublic   *bool
}

// Apply copies the patch's set fields onto the card and re-validates it.
// The card is left unchanged when validation fails.
func (p CardPatch) Apply(c *Card) error {
	updated := *c

	if p.FrontText != nil {
		updated.FrontText = *p.FrontText
	}
	if p.BackText != nil {
		updated.BackText = *p.BackText
	}
	if p.Example != nil {
		updated.Example = *p.Example
	}
	if p.Language != nil {
		updated.Language = *p.Language
	}
	if p.Difficulty != nil {
		updated.Difficulty = *p.Difficulty
	}
	if p.IsPublic != nil {
		updated.IsPublic = *p.IsPublic
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	*c = updated
	return nil
}

// IsEmpty reports whether the patch carries no changes.
func (p CardPatch) IsEmpty() bool {
	return p.FrontText == nil &&
		p.BackText == nil &&
		p.Example == nil &&
		p.Language == nil &&
		p.Difficulty == nil &&
		p.IsPublic == nil
}
