package srs

import (
	"time"
)

// daysSince returns the number of whole days elapsed between a reference
// time and now, truncated toward zero.
func daysSince(from, now time.Time) int {
	return int(now.Sub(from).Hours() / 24)
}

// isDue decides whether a card should be presented for review.
//
// The schedule is a staged ladder keyed by review count and anchored to
// the card's creation time, NOT to its last review: a card reviewed ahead
// of schedule does not reset its due-clock. The progress aggregator relies
// on the same rule for its due-today count.
//
// Cards reviewed at least len(params.ScheduleDays) times are considered
// mastered and come due on every exact multiple of MasteredCycleDays
// since creation, including day zero.
func isDue(createdAt time.Time, reviewCount int, now time.Time, params *Params) bool {
	days := daysSince(createdAt, now)

	if reviewCount < len(params.ScheduleDays) {
		return days >= params.ScheduleDays[reviewCount]
	}

	return days%params.MasteredCycleDays == 0
}

// applySimple applies the flat review used by the create-or-update path:
// the review is counted and the next review is pushed a fixed number of
// days out, regardless of answer quality.
func applySimple(state ReviewState, now time.Time, params *Params) ReviewState {
	next := state
	next.ReviewCount++
	next.LastReviewedAt = &now
	next.NextReviewAt = now.AddDate(0, 0, params.SimpleReviewDays)
	return next
}

// applyQuality applies the quality-scored review used by the explicit
// review endpoint. A passing answer (quality >= params.PassQuality)
// schedules the next review interval*easeFactor days out and nudges the
// ease factor by 0.1 - (5-quality)*0.08, clamped to the floor. A failing
// answer resets the interval to one day and leaves the ease factor alone.
func applyQuality(state ReviewState, quality int, now time.Time, params *Params) ReviewState {
	next := state
	next.ReviewCount++
	next.LastReviewedAt = &now

	if quality >= params.PassQuality {
		next.NextReviewAt = now.Add(daysToDuration(state.Interval * state.EaseFactor))
		next.EaseFactor = clampEaseFactor(
			state.EaseFactor+0.1-float64(5-quality)*0.08,
			params.MinEaseFactor,
		)
	} else {
		next.NextReviewAt = now.AddDate(0, 0, params.FailureRetryDays)
		next.Interval = 1.0
	}

	return next
}

// applySM2 applies the SM-2 style review: the interval ladder is
// 1 day, 6 days, then interval*easeFactor, and the ease factor update
// uses the full SM-2 polynomial 0.1 - (5-q)*(0.08 + (5-q)*0.02).
// A failing answer resets the interval and drops the ease factor by 0.2.
func applySM2(state ReviewState, quality int, now time.Time, params *Params) ReviewState {
	next := state

	if quality < params.PassQuality {
		next.Interval = 1.0
		next.EaseFactor = clampEaseFactor(state.EaseFactor-0.2, params.MinEaseFactor)
	} else {
		switch state.ReviewCount {
		case 0:
			next.Interval = 1.0
		case 1:
			next.Interval = 6.0
		default:
			next.Interval = state.Interval * state.EaseFactor
		}

		q := float64(5 - quality)
		next.EaseFactor = clampEaseFactor(
			state.EaseFactor+0.1-q*(0.08+q*0.02),
			params.MinEaseFactor,
		)
	}

	next.ReviewCount++
	next.LastReviewedAt = &now
	next.NextReviewAt = now.Add(daysToDuration(next.Interval))

	return next
}

// daysToDuration converts a fractional number of days to a duration.
func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}

// clampEaseFactor enforces the ease factor floor.
func clampEaseFactor(ef, min float64) float64 {
	if ef < min {
		return min
	}
	return ef
}
