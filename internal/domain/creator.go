package domain

import "time"

// RoleType enumerates the kinds of writing service a creator offers.
type RoleType string

const (
	RoleTypeGhostwriter   RoleType = "ghostwriter"
	RoleTypePMWrites      RoleType = "pm-writes"
	RoleTypeContentWriter RoleType = "content-writer"
)

// Valid reports whether the role type is one of the known values.
func (r RoleType) Valid() bool {
	switch r {
	case RoleTypeGhostwriter, RoleTypePMWrites, RoleTypeContentWriter:
		return true
	}
	return false
}

// PricingTier is an ordinal price indicator: $ < $$ < $$$.
type PricingTier string

const (
	PricingBudget  PricingTier = "$"
	PricingMid     PricingTier = "$$"
	PricingPremium PricingTier = "$$$"
)

// Rank returns the ordinal position of the tier, 0 when unknown.
func (p PricingTier) Rank() int {
	switch p {
	case PricingBudget:
		return 1
	case PricingMid:
		return 2
	case PricingPremium:
		return 3
	}
	return 0
}

// Label returns the human readable name of the tier.
func (p PricingTier) Label() string {
	switch p {
	case PricingBudget:
		return "Budget-friendly"
	case PricingMid:
		return "Mid-range"
	case PricingPremium:
		return "Premium"
	}
	return string(p)
}

// Availability describes whether a creator is taking new work.
type Availability string

const (
	AvailabilityOpen    Availability = "open"
	AvailabilityLimited Availability = "limited"
	AvailabilityBooked  Availability = "booked"
)

// Creator is a writer profile listed in the directory.
type Creator struct {
	ID            string
	UserID        string
	Name          string
	RoleType      RoleType
	Niches        []string
	Bio           *string
	SubstackURL   *string
	LinkedInURL   *string
	Samples       []string
	AudienceSize  *int
	PricingTier   PricingTier
	Availability  Availability
	Subscribers   *int
	PostsCount    *int
	ActivityScore *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasNiche reports whether the creator lists the given niche verbatim.
func (c *Creator) HasNiche(niche string) bool {
	for _, n := range c.Niches {
		if n == niche {
			return true
		}
	}
	return false
}
