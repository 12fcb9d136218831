// Package recommend explains why a creator was recommended for a brief.
package recommend

import (
	"fmt"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// BadgeKind identifies the reason behind a badge.
type BadgeKind string

const (
	BadgeRoleMatch    BadgeKind = "role_match"
	BadgeNicheOverlap BadgeKind = "niche_overlap"
	BadgePricingFit   BadgeKind = "pricing_fit"
)

// Badge is a short reason shown next to a recommended creator.
type Badge struct {
	Kind BadgeKind `json:"kind"`
	Text string    `json:"text"`
}

// Band is the budget range, in dollars, a pricing tier usually lands in.
// Max of zero means unbounded. Bands are half-open: [Min, Max).
type Band struct {
	Min int
	Max int
}

// Budget bands per pricing tier.
const (
	BudgetTierMax = 2000
	MidTierMax    = 5000
)

var pricingBands = map[domain.PricingTier]Band{
	domain.PricingBudget:  {Min: 0, Max: BudgetTierMax},
	domain.PricingMid:     {Min: BudgetTierMax, Max: MidTierMax},
	domain.PricingPremium: {Min: MidTierMax, Max: 0},
}

// BandFor returns the budget band of a tier.
func BandFor(tier domain.PricingTier) (Band, bool) {
	band, ok := pricingBands[tier]
	return band, ok
}

// PricingFits reports whether the tier's band overlaps the brief budget.
// A brief with no budget at all fits nothing.
func PricingFits(tier domain.PricingTier, budgetMin, budgetMax *int) bool {
	band, ok := BandFor(tier)
	if !ok || (budgetMin == nil && budgetMax == nil) {
		return false
	}
	if budgetMax != nil && band.Min >= *budgetMax && band.Min > 0 {
		return false
	}
	if budgetMin != nil && band.Max > 0 && *budgetMin >= band.Max {
		return false
	}
	return true
}

// NicheOverlap counts the brief niches the creator also lists.
func NicheOverlap(brief *domain.Brief, creator *domain.Creator) int {
	count := 0
	for _, niche := range brief.Niches {
		if creator.HasNiche(niche) {
			count++
		}
	}
	return count
}

// Reasons builds the badges for a creator recommended against a brief.
func Reasons(brief *domain.Brief, creator *domain.Creator) []Badge {
	badges := make([]Badge, 0, 3)
	if creator.RoleType != "" && creator.RoleType == brief.RoleTypeRequired {
		badges = append(badges, Badge{Kind: BadgeRoleMatch, Text: "Role match"})
	}
	if overlap := NicheOverlap(brief, creator); overlap > 0 {
		badges = append(badges, Badge{Kind: BadgeNicheOverlap, Text: fmt.Sprintf("Niche overlap: %d", overlap)})
	}
	if PricingFits(creator.PricingTier, brief.BudgetMin, brief.BudgetMax) {
		badges = append(badges, Badge{Kind: BadgePricingFit, Text: "Pricing fit"})
	}
	return badges
}

// FormatBudget renders a brief budget range for display.
func FormatBudget(budgetMin, budgetMax *int) string {
	switch {
	case budgetMin != nil && budgetMax != nil:
		return fmt.Sprintf("$%s - $%s", thousands(*budgetMin), thousands(*budgetMax))
	case budgetMin != nil:
		return fmt.Sprintf("$%s+", thousands(*budgetMin))
	case budgetMax != nil:
		return fmt.Sprintf("Up to $%s", thousands(*budgetMax))
	default:
		return "Budget not specified"
	}
}

func thousands(v int) string {
	s := fmt.Sprintf("%d", v)
	if v < 0 {
		return "-" + thousands(-v)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
