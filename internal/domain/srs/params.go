package srs

// Params defines all configurable parameters for the review scheduler.
type Params struct {
	// ScheduleDays holds the due thresholds, in days since card creation,
	// for review counts 0 through len-1. A card with review count i is due
	// once at least ScheduleDays[i] days have passed since it was created.
	ScheduleDays []int

	// MasteredCycleDays is the repeat cycle for cards reviewed at least
	// len(ScheduleDays) times: such a card is due whenever the days since
	// creation are an exact multiple of this value (including day 0).
	MasteredCycleDays int

	// SimpleReviewDays is the flat postponement applied by ModeSimple,
	// regardless of answer quality.
	SimpleReviewDays int

	// FailureRetryDays is the postponement after a failed quality review.
	FailureRetryDays int

	// PassQuality is the minimum quality score counted as a successful recall.
	PassQuality int

	// MinEaseFactor is the floor applied to every ease factor adjustment.
	MinEaseFactor float64
}

// ParamsConfig allows overriding the default parameters.
type ParamsConfig struct {
	ScheduleDays      []int
	MasteredCycleDays int
	SimpleReviewDays  int
	FailureRetryDays  int
	PassQuality       int
	MinEaseFactor     float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		ScheduleDays:      []int{1, 3, 7, 14, 30},
		MasteredCycleDays: 30,
		SimpleReviewDays:  30,
		FailureRetryDays:  1,
		PassQuality:       3,
		MinEaseFactor:     1.3,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if len(config.ScheduleDays) > 0 {
		params.ScheduleDays = config.ScheduleDays
	}
	if config.MasteredCycleDays > 0 {
		params.MasteredCycleDays = config.MasteredCycleDays
	}
	if config.SimpleReviewDays > 0 {
		params.SimpleReviewDays = config.SimpleReviewDays
	}
	if config.FailureRetryDays > 0 {
		params.FailureRetryDays = config.FailureRetryDays
	}
	if config.PassQuality > 0 {
		params.PassQuality = config.PassQuality
	}
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}

	return params
}
