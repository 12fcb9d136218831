package directory

import "github.com/matchstack-dev/matchstack/internal/domain"

// Engagement buckets creators by their audience signals.
type Engagement string

const (
	EngagementHigh   Engagement = "high"
	EngagementMedium Engagement = "medium"
	EngagementLow    Engagement = "low"
	// EngagementUnrated covers creators with some signal that clear neither
	// the medium nor the high bar. No filter value selects them.
	EngagementUnrated Engagement = ""
)

// Business thresholds for the engagement buckets. They are not derived from data.
const (
	HighEngagementMinSubscribers   = 1000
	HighEngagementMinActivity      = 5.0
	MediumEngagementMinSubscribers = 500
)

// Valid reports whether e is a selectable filter value.
func (e Engagement) Valid() bool {
	switch e {
	case EngagementHigh, EngagementMedium, EngagementLow:
		return true
	}
	return false
}

// ClassifyEngagement places a creator in exactly one bucket.
func ClassifyEngagement(c *domain.Creator) Engagement {
	subscribers := intOrZero(c.Subscribers)
	activity := floatOrZero(c.ActivityScore)

	if !hasEngagementSignal(c) {
		return EngagementLow
	}
	if subscribers >= HighEngagementMinSubscribers && activity >= HighEngagementMinActivity {
		return EngagementHigh
	}
	if subscribers >= MediumEngagementMinSubscribers {
		return EngagementMedium
	}
	return EngagementUnrated
}

func hasEngagementSignal(c *domain.Creator) bool {
	return intOrZero(c.Subscribers) > 0 || intOrZero(c.PostsCount) > 0 || floatOrZero(c.ActivityScore) > 0
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
