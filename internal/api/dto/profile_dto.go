package dto

import (
	"time"

	"github.com/matchstack-dev/matchstack/internal/directory"
	"github.com/matchstack-dev/matchstack/internal/domain"
)

// CompanyRequest creates or updates the caller's company.
type CompanyRequest struct {
	Name         string   `json:"name" validate:"required,notblank,max=200"`
	Website      *string  `json:"website" validate:"omitempty,url"`
	ContactEmail *string  `json:"contact_email" validate:"omitempty,email"`
	Industries   []string `json:"industries" validate:"max=20,dive,notblank,max=60"`
}

// CompanyResponse is the public view of a company.
type CompanyResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Website      *string   `json:"website"`
	ContactEmail *string   `json:"contact_email"`
	Industries   []string  `json:"industries"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreatorRequest creates or updates the caller's creator profile.
type CreatorRequest struct {
	Name         string              `json:"name" validate:"required,notblank,max=200"`
	RoleType     domain.RoleType     `json:"role_type" validate:"required,role_type"`
	Niches       []string            `json:"niches" validate:"max=20,dive,notblank,max=60"`
	Bio          *string             `json:"bio" validate:"omitempty,max=4000"`
	SubstackURL  *string             `json:"substack_url" validate:"omitempty,url"`
	LinkedInURL  *string             `json:"linkedin_url" validate:"omitempty,url"`
	Samples      []string            `json:"samples" validate:"max=10,dive,url"`
	AudienceSize *int                `json:"audience_size" validate:"omitempty,min=0"`
	PricingTier  domain.PricingTier  `json:"pricing_tier" validate:"omitempty,pricing_tier"`
	Availability domain.Availability `json:"availability" validate:"omitempty,availability"`
}

// CreatorResponse is the directory card of a creator.
type CreatorResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	Name          string               `json:"name"`
	RoleType      domain.RoleType      `json:"role_type"`
	Niches        []string             `json:"niches"`
	Bio           *string              `json:"bio"`
	SubstackURL   *string              `json:"substack_url"`
	LinkedInURL   *string              `json:"linkedin_url"`
	Samples       []string             `json:"samples"`
	AudienceSize  *int                 `json:"audience_size"`
	PricingTier   domain.PricingTier   `json:"pricing_tier"`
	PricingLabel  string               `json:"pricing_label"`
	Availability  domain.Availability  `json:"availability"`
	Subscribers   *int                 `json:"subscribers"`
	PostsCount    *int                 `json:"posts_count"`
	ActivityScore *float64             `json:"activity_score"`
	Engagement    directory.Engagement `json:"engagement,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewCompanyResponse maps a company.
func NewCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Website:      c.Website,
		ContactEmail: c.ContactEmail,
		Industries:   nonNilStrings(c.Industries),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// NewCreatorResponse maps a creator.
func NewCreatorResponse(c *domain.Creator) CreatorResponse {
	return CreatorResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		Name:          c.Name,
		RoleType:      c.RoleType,
		Niches:        nonNilStrings(c.Niches),
		Bio:           c.Bio,
		SubstackURL:   c.SubstackURL,
		LinkedInURL:   c.LinkedInURL,
		Samples:       nonNilStrings(c.Samples),
		AudienceSize:  c.AudienceSize,
		PricingTier:   c.PricingTier,
		PricingLabel:  c.PricingTier.Label(),
		Availability:  c.Availability,
		Subscribers:   c.Subscribers,
		PostsCount:    c.PostsCount,
		ActivityScore: c.ActivityScore,
		Engagement:    directory.ClassifyEngagement(c),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToDomain converts a response back into the domain shape.
func (r CreatorResponse) ToDomain() domain.Creator {
	return domain.Creator{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		RoleType:      r.RoleType,
		Niches:        r.Niches,
		Bio:           r.Bio,
		SubstackURL:   r.SubstackURL,
		LinkedInURL:   r.LinkedInURL,
		Samples:       r.Samples,
		AudienceSize:  r.AudienceSize,
		PricingTier:   r.PricingTier,
		Availability:  r.Availability,
		Subscribers:   r.Subscribers,
		PostsCount:    r.PostsCount,
		ActivityScore: r.ActivityScore,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
