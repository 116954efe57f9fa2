// Package progress derives learning summary statistics from a user's full
// card set: counts, percentages, levels and achievement badges. Like the
// scheduler it is pure computation over plain data.
package progress

import (
	"math"
	"time"

	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
)

// Tunable thresholds for levels, mastery and badges.
const (
	// MasteredReviewCount is the review count at which a card counts as mastered.
	MasteredReviewCount = 5

	// CardsPerLevel is how many cards advance the user one level.
	CardsPerLevel = 5

	// MaxLevel caps the user level.
	MaxLevel = 10

	// ActivityTargetCards is the card count at which the activity score reaches 100.
	ActivityTargetCards = 20
)

// Achievement badge names, in unlock-check order.
const (
	BadgeBeginner   = "Beginner"
	BadgeWordLover  = "Word lover"
	BadgeWordMaster = "Word master"
	BadgeCollector  = "Collector"
)

// Summary is the computed progress snapshot for one user's card set.
// All percentage fields are rounded to one decimal place.
type Summary struct {
	TotalCards        int      `json:"total_cards"`
	DueToday          int      `json:"due_today"`
	MasteredCards     int      `json:"mastered_cards"`
	TotalReviews      int      `json:"total_reviews"`
	MasteryPercentage float64  `json:"mastery_percentage"`
	ActivityScore     float64  `json:"activity_score"`
	OverallProgress   float64  `json:"overall_progress"`
	DailyProgress     float64  `json:"daily_progress"`
	StreakDays        int      `json:"streak_days"`
	Level             int      `json:"level"`
	Achievements      []string `json:"achievements"`
	NextLevelCards    int      `json:"next_level_cards"`
}

// Calculator computes progress summaries. It consults the scheduler for
// due-ness so both share one schedule definition.
type Calculator struct {
	sched srs.Service
}

// NewCalculator creates a Calculator backed by the given scheduler.
func NewCalculator(sched srs.Service) *Calculator {
	if sched == nil {
		panic("sched cannot be nil")
	}
	return &Calculator{sched: sched}
}

// Compute classifies every card once and derives the summary. The empty
// card set yields a fixed zero-valued summary at level 1 with ten cards
// to the next level.
//
// StreakDays is a placeholder: consecutive-day activity is not tracked
// yet, so it reports a constant 1 for any non-empty card set.
func (c *Calculator) Compute(cards []*domain.Card, now time.Time) *Summary {
	total := len(cards)
	if total == 0 {
		return &Summary{
			Level:          1,
			Achievements:   []string{},
			NextLevelCards: 10,
		}
	}

	var dueToday, mastered, totalReviews int
	for _, card := range cards {
		if c.sched.IsDue(card.CreatedAt, card.ReviewCount, now) {
			dueToday++
		}
		if card.ReviewCount >= MasteredReviewCount {
			mastered++
		}
		totalReviews += card.ReviewCount
	}

	masteryPct := float64(mastered) / float64(total) * 100
	activity := math.Min(100, float64(total)/ActivityTargetCards*100)
	overall := masteryPct*0.7 + activity*0.3
	daily := math.Min(100, float64(dueToday)/float64(total)*100)

	level := total/CardsPerLevel + 1
	if level > MaxLevel {
		level = MaxLevel
	}

	nextLevelCards := level*CardsPerLevel - total
	if nextLevelCards < 0 {
		nextLevelCards = 0
	}

	achievements := []string{}
	if total >= 5 {
		achievements = append(achievements, BadgeBeginner)
	}
	if total >= 10 {
		achievements = append(achievements, BadgeWordLover)
	}
	if mastered >= 5 {
		achievements = append(achievements, BadgeWordMaster)
	}
	if total >= 20 {
		achievements = append(achievements, BadgeCollector)
	}

	return &Summary{
		TotalCards:        total,
		DueToday:          dueToday,
		MasteredCards:     mastered,
		TotalReviews:      totalReviews,
		MasteryPercentage: round1(masteryPct),
		ActivityScore:     round1(activity),
		OverallProgress:   round1(overall),
		DailyProgress:     round1(daily),
		StreakDays:        1,
		Level:             level,
		Achievements:      achievements,
		NextLevelCards:    nextLevelCards,
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
