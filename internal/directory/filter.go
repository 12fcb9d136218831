// Package directory narrows the creator directory down to what a viewer asked for.
package directory

import (
	"sort"
	"strings"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// Criteria holds the viewer's filter selection. Zero values impose no constraint.
type Criteria struct {
	RoleType     domain.RoleType
	PricingTier  domain.PricingTier
	Availability domain.Availability
	Engagement   Engagement
	Search       string
	Niches       []string
}

// Active reports whether any criterion constrains the result.
func (c Criteria) Active() bool {
	return c.RoleType != "" || c.PricingTier != "" || c.Availability != "" ||
		c.Engagement != "" || strings.TrimSpace(c.Search) != "" || len(c.Niches) > 0
}

// Filter returns the creators satisfying every active criterion, in input order.
// The result is never nil, so an empty match is distinguishable from "not loaded".
func Filter(creators []domain.Creator, criteria Criteria) []domain.Creator {
	result := make([]domain.Creator, 0, len(creators))
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	for i := range creators {
		if matches(&creators[i], criteria, search) {
			result = append(result, creators[i])
		}
	}
	return result
}

// Matches reports whether a single creator passes the criteria.
func Matches(c *domain.Creator, criteria Criteria) bool {
	return matches(c, criteria, strings.ToLower(strings.TrimSpace(criteria.Search)))
}

func matches(c *domain.Creator, criteria Criteria, search string) bool {
	if criteria.RoleType != "" && c.RoleType != criteria.RoleType {
		return false
	}
	if criteria.PricingTier != "" && c.PricingTier != criteria.PricingTier {
		return false
	}
	if criteria.Availability != "" && c.Availability != criteria.Availability {
		return false
	}
	if criteria.Engagement != "" && ClassifyEngagement(c) != criteria.Engagement {
		return false
	}
	if search != "" && !matchesSearch(c, search) {
		return false
	}
	if len(criteria.Niches) > 0 && !sharesNiche(c, criteria.Niches) {
		return false
	}
	return true
}

func matchesSearch(c *domain.Creator, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	if c.Bio != nil && strings.Contains(strings.ToLower(*c.Bio), needle) {
		return true
	}
	for _, niche := range c.Niches {
		if strings.Contains(strings.ToLower(niche), needle) {
			return true
		}
	}
	return false
}

func sharesNiche(c *domain.Creator, selected []string) bool {
	for _, niche := range selected {
		if c.HasNiche(niche) {
			return true
		}
	}
	return false
}

// Niches returns the sorted set of niches used across all creators.
func Niches(creators []domain.Creator) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for i := range creators {
		for _, niche := range creators[i].Niches {
			if _, ok := seen[niche]; ok {
				continue
			}
			seen[niche] = struct{}{}
			result = append(result, niche)
		}
	}
	sort.Strings(result)
	return result
}
