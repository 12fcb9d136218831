package domain

// Recommendation is one scored row of the recommendation view.
type Recommendation struct {
	BriefID string
	Creator Creator
	Score   float64
}
