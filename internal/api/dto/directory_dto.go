package dto

import (
	"strings"

	"github.com/matchstack-dev/matchstack/internal/directory"
	"github.com/matchstack-dev/matchstack/internal/domain"
)

// DirectoryQuery is parsed from GET /creators query parameters.
// Niches are comma separated: ?niches=AI,SaaS.
type DirectoryQuery struct {
	RoleType     string `query:"role_type" json:"role_type" validate:"omitempty,role_type"`
	PricingTier  string `query:"pricing_tier" json:"pricing_tier" validate:"omitempty,pricing_tier"`
	Availability string `query:"availability" json:"availability" validate:"omitempty,availability"`
	Engagement   string `query:"engagement" json:"engagement" validate:"omitempty,oneof=high medium low"`
	Search       string `query:"q" json:"q" validate:"max=200"`
	Niches       string `query:"niches" json:"niches" validate:"max=1000"`
}

// Criteria converts the query into filter criteria.
func (q DirectoryQuery) Criteria() directory.Criteria {
	var niches []string
	for _, n := range strings.Split(q.Niches, ",") {
		if n = strings.TrimSpace(n); n != "" {
			niches = append(niches, n)
		}
	}
	return directory.Criteria{
		RoleType:     domain.RoleType(q.RoleType),
		PricingTier:  domain.PricingTier(q.PricingTier),
		Availability: domain.Availability(q.Availability),
		Engagement:   directory.Engagement(q.Engagement),
		Search:       q.Search,
		Niches:       niches,
	}
}

// DirectoryResponse is one filtered page of the directory.
type DirectoryResponse struct {
	Creators []CreatorResponse `json:"creators"`
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Niches   []string          `json:"niches"`
}

// NewDirectoryResponse maps filtered creators plus the unfiltered totals.
func NewDirectoryResponse(creators []domain.Creator, total int, niches []string) DirectoryResponse {
	items := make([]CreatorResponse, 0, len(creators))
	for i := range creators {
		items = append(items, NewCreatorResponse(&creators[i]))
	}
	return DirectoryResponse{
		Creators: items,
		Count:    len(items),
		Total:    total,
		Niches:   nonNilStrings(niches),
	}
}
