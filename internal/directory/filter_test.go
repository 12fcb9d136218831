package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func sampleCreators() []domain.Creator {
	return []domain.Creator{
		{
			ID: "c1", Name: "Ada Lovelace", RoleType: domain.RoleTypeGhostwriter,
			Niches: []string{"AI", "Fintech"}, Bio: strPtr("Writes about machine learning"),
			PricingTier: domain.PricingMid, Availability: domain.AvailabilityOpen,
			Subscribers: intPtr(2500), ActivityScore: floatPtr(7),
		},
		{
			ID: "c2", Name: "Grace Hopper", RoleType: domain.RoleTypePMWrites,
			Niches: []string{"SaaS"}, PricingTier: domain.PricingPremium,
			Availability: domain.AvailabilityLimited, Subscribers: intPtr(800), PostsCount: intPtr(40),
		},
		{
			ID: "c3", Name: "Linus", RoleType: domain.RoleTypeContentWriter,
			PricingTier: domain.PricingBudget, Availability: domain.AvailabilityBooked,
		},
		{
			ID: "c4", Name: "Margaret", RoleType: domain.RoleTypeGhostwriter,
			Niches: []string{"Health", "AI"}, Bio: strPtr("Long-form SaaS case studies"),
			PricingTier: domain.PricingBudget, Availability: domain.AvailabilityOpen,
			Subscribers: intPtr(120), PostsCount: intPtr(3),
		},
	}
}

func ids(creators []domain.Creator) []string {
	out := make([]string, 0, len(creators))
	for _, c := range creators {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, Criteria{RoleType: domain.RoleTypeGhostwriter, Search: "x", Niches: []string{"AI"}})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterNoMatchIsEmptyNotNil(t *testing.T) {
	got := Filter(sampleCreators(), Criteria{Search: "nobody-by-this-name"})
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestFilterNoCriteriaReturnsAll(t *testing.T) {
	creators := sampleCreators()
	assert.Equal(t, ids(creators), ids(Filter(creators, Criteria{})))
}

func TestFilterEqualityCriteria(t *testing.T) {
	creators := sampleCreators()

	assert.Equal(t, []string{"c1", "c4"}, ids(Filter(creators, Criteria{RoleType: domain.RoleTypeGhostwriter})))
	assert.Equal(t, []string{"c3", "c4"}, ids(Filter(creators, Criteria{PricingTier: domain.PricingBudget})))
	assert.Equal(t, []string{"c2"}, ids(Filter(creators, Criteria{Availability: domain.AvailabilityLimited})))
	assert.Equal(t, []string{"c4"}, ids(Filter(creators, Criteria{
		RoleType:    domain.RoleTypeGhostwriter,
		PricingTier: domain.PricingBudget,
	})))
}

func TestFilterSearchMatchesNameBioOrNiche(t *testing.T) {
	creators := sampleCreators()

	assert.Equal(t, []string{"c1"}, ids(Filter(creators, Criteria{Search: "ADA"})))
	assert.Equal(t, []string{"c1"}, ids(Filter(creators, Criteria{Search: "machine"})))
	assert.Equal(t, []string{"c2", "c4"}, ids(Filter(creators, Criteria{Search: "saas"})))
	assert.Equal(t, ids(creators), ids(Filter(creators, Criteria{Search: "   "})))
}

func TestFilterNichesUseOrSemantics(t *testing.T) {
	creators := sampleCreators()

	assert.Equal(t, []string{"c1", "c4"}, ids(Filter(creators, Criteria{Niches: []string{"AI"}})))
	assert.Equal(t, []string{"c1", "c2", "c4"}, ids(Filter(creators, Criteria{Niches: []string{"AI", "SaaS"}})))
	assert.Empty(t, Filter(creators, Criteria{Niches: []string{"Crypto"}}))
}

func TestFilterCreatorWithoutNichesNeverMatchesNicheFilter(t *testing.T) {
	creators := sampleCreators()
	for _, c := range Filter(creators, Criteria{Niches: []string{"AI", "SaaS", "Health", "Fintech"}}) {
		assert.NotEqual(t, "c3", c.ID)
	}
}

func TestFilterEmptyNicheSelectionImposesNoConstraint(t *testing.T) {
	creators := sampleCreators()
	base := Criteria{Availability: domain.AvailabilityOpen}
	withEmpty := base
	withEmpty.Niches = []string{}

	assert.Equal(t, ids(Filter(creators, base)), ids(Filter(creators, withEmpty)))
}

func TestFilterEngagement(t *testing.T) {
	creators := sampleCreators()

	assert.Equal(t, []string{"c1"}, ids(Filter(creators, Criteria{Engagement: EngagementHigh})))
	assert.Equal(t, []string{"c2"}, ids(Filter(creators, Criteria{Engagement: EngagementMedium})))
	assert.Equal(t, []string{"c3"}, ids(Filter(creators, Criteria{Engagement: EngagementLow})))
}

func TestFilterHighEngagementNeverBelowSubscriberBar(t *testing.T) {
	creators := append(sampleCreators(),
		domain.Creator{ID: "c5", Subscribers: intPtr(999), ActivityScore: floatPtr(50)},
		domain.Creator{ID: "c6", Subscribers: intPtr(1000), ActivityScore: floatPtr(4.9)},
		domain.Creator{ID: "c7", Subscribers: intPtr(1000), ActivityScore: floatPtr(5)},
	)
	got := Filter(creators, Criteria{Engagement: EngagementHigh})
	for _, c := range got {
		require.NotNil(t, c.Subscribers)
		assert.GreaterOrEqual(t, *c.Subscribers, HighEngagementMinSubscribers)
	}
	assert.Equal(t, []string{"c1", "c7"}, ids(got))
}

func TestFilterIsSubsetAndIdempotent(t *testing.T) {
	creators := sampleCreators()
	criteriaSet := []Criteria{
		{},
		{RoleType: domain.RoleTypeGhostwriter},
		{Search: "a", Niches: []string{"AI", "SaaS"}},
		{Engagement: EngagementMedium, Availability: domain.AvailabilityLimited},
		{PricingTier: domain.PricingPremium, Niches: []string{"AI"}},
	}

	input := make(map[string]struct{}, len(creators))
	for _, c := range creators {
		input[c.ID] = struct{}{}
	}

	for _, criteria := range criteriaSet {
		once := Filter(creators, criteria)
		for i := range once {
			_, ok := input[once[i].ID]
			assert.True(t, ok, "filter invented creator %s", once[i].ID)
			assert.True(t, Matches(&once[i], criteria))
		}
		assert.Equal(t, ids(once), ids(Filter(once, criteria)))
	}
}

func TestNichesCatalogue(t *testing.T) {
	assert.Equal(t, []string{"AI", "Fintech", "Health", "SaaS"}, Niches(sampleCreators()))
	assert.Equal(t, []string{}, Niches(nil))
}

func TestCriteriaActive(t *testing.T) {
	assert.False(t, Criteria{}.Active())
	assert.False(t, Criteria{Search: "  "}.Active())
	assert.True(t, Criteria{Niches: []string{"AI"}}.Active())
}
