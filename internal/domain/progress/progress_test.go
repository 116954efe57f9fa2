package progress

import (
	"reflect"
	"testing"
	"time"

	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
)

// makeCards builds n cards sharing a creation time and review count.
func makeCards(n, reviewCount int, createdAt time.Time) []*domain.Card {
	cards := make([]*domain.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, &domain.Card{
			ReviewCount: reviewCount,
			CreatedAt:   createdAt,
		})
	}
	return cards
}

func TestComputeEmptyCardSet(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(srs.NewDefaultService())

	summary := calc.Compute(nil, time.Now().UTC())

	want := &Summary{
		Level:          1,
		Achievements:   []string{},
		NextLevelCards: 10,
	}
	if !reflect.DeepEqual(summary, want) {
		t.Errorf("Compute(empty) = %+v, want %+v", summary, want)
	}
	if summary.Achievements == nil {
		t.Error("Achievements must be an empty slice, not nil")
	}
}

func TestComputeSingleFreshCard(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(srs.NewDefaultService())
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	summary := calc.Compute(makeCards(1, 0, now), now)

	if summary.TotalCards != 1 {
		t.Errorf("TotalCards = %d, want 1", summary.TotalCards)
	}
	if summary.DueToday != 0 {
		t.Errorf("DueToday = %d, want 0 (card is younger than one day)", summary.DueToday)
	}
	if summary.MasteryPercentage != 0 {
		t.Errorf("MasteryPercentage = %v, want 0", summary.MasteryPercentage)
	}
	if summary.ActivityScore != 5 {
		t.Errorf("ActivityScore = %v, want 5", summary.ActivityScore)
	}
	if summary.OverallProgress != 1.5 {
		t.Errorf("OverallProgress = %v, want 1.5", summary.OverallProgress) // 0*0.7 + 5*0.3
	}
	if summary.Level != 1 || summary.NextLevelCards != 4 {
		t.Errorf("Level/NextLevelCards = %d/%d, want 1/4", summary.Level, summary.NextLevelCards)
	}
	if summary.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", summary.StreakDays)
	}
	if len(summary.Achievements) != 0 {
		t.Errorf("Achievements = %v, want none", summary.Achievements)
	}
}

func TestComputeAchievements(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(srs.NewDefaultService())
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	createdAt := now.AddDate(0, 0, -2)

	testCases := []struct {
		name     string
		cards    []*domain.Card
		expected []string
	}{
		{
			name:     "four cards earn nothing",
			cards:    makeCards(4, 0, createdAt),
			expected: []string{},
		},
		{
			name:     "five cards earn the beginner badge",
			cards:    makeCards(5, 0, createdAt),
			expected: []string{BadgeBeginner},
		},
		{
			name:     "ten cards add the word lover badge",
			cards:    makeCards(10, 0, createdAt),
			expected: []string{BadgeBeginner, BadgeWordLover},
		},
		{
			name:     "five mastered cards add the word master badge",
			cards:    append(makeCards(5, 5, createdAt), makeCards(5, 0, createdAt)...),
			expected: []string{BadgeBeginner, BadgeWordLover, BadgeWordMaster},
		},
		{
			name:     "twenty cards complete the set",
			cards:    append(makeCards(5, 5, createdAt), makeCards(15, 0, createdAt)...),
			expected: []string{BadgeBeginner, BadgeWordLover, BadgeWordMaster, BadgeCollector},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			summary := calc.Compute(tc.cards, now)
			if !reflect.DeepEqual(summary.Achievements, tc.expected) {
				t.Errorf("Achievements = %v, want %v", summary.Achievements, tc.expected)
			}
		})
	}
}

func TestComputePercentagesAndRounding(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(srs.NewDefaultService())
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	// Three cards, one mastered, one due (two days old, never reviewed) and
	// one too young to be due.
	cards := []*domain.Card{
		{ReviewCount: 5, CreatedAt: now.AddDate(0, 0, -15)}, // 15 % 30 != 0, not due
		{ReviewCount: 0, CreatedAt: now.AddDate(0, 0, -2)},
		{ReviewCount: 0, CreatedAt: now},
	}

	summary := calc.Compute(cards, now)

	if summary.DueToday != 1 {
		t.Fatalf("DueToday = %d, want 1", summary.DueToday)
	}
	if summary.TotalReviews != 5 {
		t.Errorf("TotalReviews = %d, want 5", summary.TotalReviews)
	}
	if summary.MasteryPercentage != 33.3 {
		t.Errorf("MasteryPercentage = %v, want 33.3", summary.MasteryPercentage)
	}
	if summary.ActivityScore != 15 {
		t.Errorf("ActivityScore = %v, want 15", summary.ActivityScore) // 3/20 * 100
	}
	if summary.OverallProgress != 27.8 {
		t.Errorf("OverallProgress = %v, want 27.8", summary.OverallProgress) // 33.33*0.7 + 15*0.3
	}
	if summary.DailyProgress != 33.3 {
		t.Errorf("DailyProgress = %v, want 33.3", summary.DailyProgress)
	}
}

func TestComputeLevelCaps(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(srs.NewDefaultService())
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	createdAt := now.AddDate(0, 0, -2)

	testCases := []struct {
		name          string
		totalCards    int
		wantLevel     int
		wantNextCards int
	}{
		{"level two at five cards", 5, 2, 5},
		{"level six at twenty-five cards", 25, 6, 5},
		{"level caps at ten", 60, 10, 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			summary := calc.Compute(makeCards(tc.totalCards, 0, createdAt), now)
			if summary.Level != tc.wantLevel {
				t.Errorf("Level = %d, want %d", summary.Level, tc.wantLevel)
			}
			if summary.NextLevelCards != tc.wantNextCards {
				t.Errorf("NextLevelCards = %d, want %d", summary.NextLevelCards, tc.wantNextCards)
			}
		})
	}
}

func TestComputeActivityScoreCapsAtHundred(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(srs.NewDefaultService())
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	summary := calc.Compute(makeCards(40, 0, now.AddDate(0, 0, -2)), now)
	if summary.ActivityScore != 100 {
		t.Errorf("ActivityScore = %v, want 100", summary.ActivityScore)
	}
}
