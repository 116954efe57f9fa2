package srs

import (
	"math"
	"testing"
	"time"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestIsDueLadder(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		reviewCount int
		daysElapsed int
		expected    bool
	}{
		{"unreviewed card before first day", 0, 0, false},
		{"unreviewed card on first day", 0, 1, true},
		{"unreviewed card long overdue", 0, 90, true},
		{"once-reviewed card at two days", 1, 2, false},
		{"once-reviewed card at three days", 1, 3, true},
		{"twice-reviewed card at six days", 2, 6, false},
		{"twice-reviewed card at seven days", 2, 7, true},
		{"thrice-reviewed card at thirteen days", 3, 13, false},
		{"thrice-reviewed card at fourteen days", 3, 14, true},
		{"four-times-reviewed card at thirty days", 4, 30, true},
		{"four-times-reviewed card at twenty-nine days", 4, 29, false},
		{"mastered card on creation day", 5, 0, true},
		{"mastered card at twenty-nine days", 5, 29, false},
		{"mastered card at thirty days", 5, 30, true},
		{"mastered card at fifty-nine days", 5, 59, false},
		{"mastered card at sixty days", 5, 60, true},
		{"mastered card off the cycle", 5, 61, false},
		{"heavily reviewed card follows the same cycle", 12, 90, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			now := createdAt.AddDate(0, 0, tc.daysElapsed)
			got := isDue(createdAt, tc.reviewCount, now, params)
			if got != tc.expected {
				t.Errorf("isDue(%d reviews, %d days) = %v, want %v",
					tc.reviewCount, tc.daysElapsed, got, tc.expected)
			}
		})
	}
}

func TestIsDueAnchoredToCreationNotLastReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	createdAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Ten days after creation a card with two reviews is still bound to the
	// seven-day rung regardless of when those reviews happened.
	now := createdAt.AddDate(0, 0, 10)
	if !isDue(createdAt, 2, now, params) {
		t.Error("card past its seven-day rung should be due")
	}

	// Reviewing it moves it to the fourteen-day rung, still counted from
	// creation, so four more days make it due again.
	if isDue(createdAt, 3, now, params) {
		t.Error("card on the fourteen-day rung should not be due at day 10")
	}
	if !isDue(createdAt, 3, createdAt.AddDate(0, 0, 14), params) {
		t.Error("card on the fourteen-day rung should be due at day 14")
	}
}

func TestApplySimple(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	state := ReviewState{
		ReviewCount: 2,
		Interval:    4.0,
		EaseFactor:  2.5,
	}

	next := applySimple(state, now, params)

	if next.ReviewCount != 3 {
		t.Errorf("ReviewCount = %d, want 3", next.ReviewCount)
	}
	wantNext := now.AddDate(0, 0, 30)
	if !next.NextReviewAt.Equal(wantNext) {
		t.Errorf("NextReviewAt = %v, want %v", next.NextReviewAt, wantNext)
	}
	if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
		t.Errorf("LastReviewedAt = %v, want %v", next.LastReviewedAt, now)
	}
	// The flat review leaves the quality-mode fields alone.
	if !almostEqual(next.Interval, 4.0) || !almostEqual(next.EaseFactor, 2.5) {
		t.Errorf("Interval/EaseFactor changed: %v/%v", next.Interval, next.EaseFactor)
	}
}

func TestApplyQuality(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		state        ReviewState
		quality      int
		wantNextAt   time.Time
		wantInterval float64
		wantEase     float64
	}{
		{
			name:         "perfect answer schedules interval times ease days out",
			state:        ReviewState{ReviewCount: 1, Interval: 4.0, EaseFactor: 2.5},
			quality:      5,
			wantNextAt:   now.Add(daysToDuration(10.0)),
			wantInterval: 4.0, // interval itself is untouched on success
			wantEase:     2.6,
		},
		{
			name:         "barely passing answer shrinks the ease factor",
			state:        ReviewState{ReviewCount: 1, Interval: 4.0, EaseFactor: 2.5},
			quality:      3,
			wantNextAt:   now.Add(daysToDuration(10.0)),
			wantInterval: 4.0,
			wantEase:     2.44, // 2.5 + 0.1 - 2*0.08
		},
		{
			name:         "failure retries tomorrow and resets the interval",
			state:        ReviewState{ReviewCount: 3, Interval: 12.0, EaseFactor: 2.2},
			quality:      2,
			wantNextAt:   now.AddDate(0, 0, 1),
			wantInterval: 1.0,
			wantEase:     2.2, // failure leaves the ease factor alone
		},
		{
			name:         "ease factor never drops below the floor",
			state:        ReviewState{ReviewCount: 1, Interval: 1.0, EaseFactor: 1.3},
			quality:      3,
			wantNextAt:   now.Add(daysToDuration(1.3)),
			wantInterval: 1.0,
			wantEase:     1.3,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next := applyQuality(tc.state, tc.quality, now, params)

			if next.ReviewCount != tc.state.ReviewCount+1 {
				t.Errorf("ReviewCount = %d, want %d", next.ReviewCount, tc.state.ReviewCount+1)
			}
			if !next.NextReviewAt.Equal(tc.wantNextAt) {
				t.Errorf("NextReviewAt = %v, want %v", next.NextReviewAt, tc.wantNextAt)
			}
			if !almostEqual(next.Interval, tc.wantInterval) {
				t.Errorf("Interval = %v, want %v", next.Interval, tc.wantInterval)
			}
			if !almostEqual(next.EaseFactor, tc.wantEase) {
				t.Errorf("EaseFactor = %v, want %v", next.EaseFactor, tc.wantEase)
			}
		})
	}
}

func TestApplySM2(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		state        ReviewState
		quality      int
		wantInterval float64
		wantEase     float64
	}{
		{
			name:         "first successful review sets a one-day interval",
			state:        ReviewState{ReviewCount: 0, Interval: 1.0, EaseFactor: 2.5},
			quality:      5,
			wantInterval: 1.0,
			wantEase:     2.6, // 2.5 + 0.1 - 0
		},
		{
			name:         "second successful review jumps to six days",
			state:        ReviewState{ReviewCount: 1, Interval: 1.0, EaseFactor: 2.6},
			quality:      4,
			wantInterval: 6.0,
			wantEase:     2.6, // 2.6 + 0.1 - 1*(0.08+0.02)
		},
		{
			name:         "later reviews multiply by the ease factor",
			state:        ReviewState{ReviewCount: 2, Interval: 6.0, EaseFactor: 2.6},
			quality:      4,
			wantInterval: 15.6,
			wantEase:     2.6,
		},
		{
			name:         "quality three takes the full polynomial penalty",
			state:        ReviewState{ReviewCount: 2, Interval: 6.0, EaseFactor: 2.5},
			quality:      3,
			wantInterval: 15.0,
			wantEase:     2.36, // 2.5 + 0.1 - 2*(0.08+2*0.02)
		},
		{
			name:         "failure resets the interval and drops the ease factor",
			state:        ReviewState{ReviewCount: 4, Interval: 20.0, EaseFactor: 2.0},
			quality:      1,
			wantInterval: 1.0,
			wantEase:     1.8,
		},
		{
			name:         "failure clamps the ease factor at the floor",
			state:        ReviewState{ReviewCount: 4, Interval: 20.0, EaseFactor: 1.4},
			quality:      0,
			wantInterval: 1.0,
			wantEase:     1.3,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next := applySM2(tc.state, tc.quality, now, params)

			if next.ReviewCount != tc.state.ReviewCount+1 {
				t.Errorf("ReviewCount = %d, want %d", next.ReviewCount, tc.state.ReviewCount+1)
			}
			if !almostEqual(next.Interval, tc.wantInterval) {
				t.Errorf("Interval = %v, want %v", next.Interval, tc.wantInterval)
			}
			if !almostEqual(next.EaseFactor, tc.wantEase) {
				t.Errorf("EaseFactor = %v, want %v", next.EaseFactor, tc.wantEase)
			}
			wantNextAt := now.Add(daysToDuration(tc.wantInterval))
			if !next.NextReviewAt.Equal(wantNextAt) {
				t.Errorf("NextReviewAt = %v, want %v", next.NextReviewAt, wantNextAt)
			}
		})
	}
}

func TestApplyReviewLeavesInputUntouched(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	original := ReviewState{ReviewCount: 2, Interval: 7.0, EaseFactor: 2.3}
	snapshot := original

	for _, mode := range []Mode{ModeSimple, ModeQuality, ModeSM2} {
		if _, err := svc.ApplyReview(original, 4, mode, now); err != nil {
			t.Fatalf("ApplyReview(%s) returned error: %v", mode, err)
		}
		if original != snapshot {
			t.Fatalf("ApplyReview(%s) mutated its input", mode)
		}
	}
}
