// Package srs implements the spaced repetition scheduling rules: deciding
// when a card is due and how a review outcome adjusts its schedule.
// All computations are pure functions over plain data; persistence and
// transport are the caller's concern.
package srs

import (
	"errors"
	"time"

	"github.com/wordvault/wordvault-api/internal/domain"
)

// Common errors
var (
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
	ErrInvalidMode    = errors.New("invalid review mode")
)

// Mode selects which review algorithm ApplyReview runs. Three variants
// coexist: the flat simple mode used by the create-or-update path, the
// quality-scored mode used by explicit review endpoints, and the SM-2
// variant selectable through configuration.
type Mode string

const (
	ModeSimple  Mode = "simple"
	ModeQuality Mode = "quality"
	ModeSM2     Mode = "sm2"
)

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSimple, ModeQuality, ModeSM2:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// ReviewState carries the scheduling fields of a card through a review
// computation. It is plain data: ApplyReview never mutates its input and
// never touches storage.
type ReviewState struct {
	ReviewCount    int
	Interval       float64 // days, always > 0
	EaseFactor     float64 // clamped to >= 1.3
	LastReviewedAt *time.Time
	NextReviewAt   time.Time
}

// StateFromCard extracts the scheduling state of a card.
func StateFromCard(card *domain.Card) ReviewState {
	return ReviewState{
		ReviewCount:    card.ReviewCount,
		Interval:       card.Interval,
		EaseFactor:     card.EaseFactor,
		LastReviewedAt: card.LastReviewedAt,
		NextReviewAt:   card.NextReviewAt,
	}
}

// ApplyToCard writes the scheduling state back onto a card.
func (s ReviewState) ApplyToCard(card *domain.Card) {
	card.ReviewCount = s.ReviewCount
	card.Interval = s.Interval
	card.EaseFactor = s.EaseFactor
	card.LastReviewedAt = s.LastReviewedAt
	card.NextReviewAt = s.NextReviewAt
}

// Service defines the scheduling operations exposed to the rest of the
// application.
type Service interface {
	// IsDue reports whether a card with the given creation time and review
	// count should be presented for review at the given moment.
	IsDue(createdAt time.Time, reviewCount int, now time.Time) bool

	// ApplyReview computes the post-review scheduling state for a card.
	// The mode selects the algorithm variant; quality is ignored by
	// ModeSimple. Returns a new state, leaving the input untouched.
	ApplyReview(state ReviewState, quality int, mode Mode, now time.Time) (ReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// IsDue implements the Service interface.
func (s *defaultService) IsDue(createdAt time.Time, reviewCount int, now time.Time) bool {
	return isDue(createdAt, reviewCount, now, s.params)
}

// ApplyReview implements the Service interface.
func (s *defaultService) ApplyReview(
	state ReviewState,
	quality int,
	mode Mode,
	now time.Time,
) (ReviewState, error) {
	if quality < 0 || quality > 5 {
		return ReviewState{}, ErrInvalidQuality
	}

	switch mode {
	case ModeSimple:
		return applySimple(state, now, s.params), nil
	case ModeQuality:
		return applyQuality(state, quality, now, s.params), nil
	case ModeSM2:
		return applySM2(state, quality, now, s.params), nil
	default:
		return ReviewState{}, ErrInvalidMode
	}
}
