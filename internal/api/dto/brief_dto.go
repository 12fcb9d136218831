package dto

import (
	"time"

	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/recommend"
)

// CreateBriefRequest payload.
type CreateBriefRequest struct {
	Title            string          `json:"title" validate:"required,notblank,max=200"`
	Description      string          `json:"description" validate:"max=8000"`
	RoleTypeRequired domain.RoleType `json:"role_type_required" validate:"required,role_type"`
	Niches           []string        `json:"niches" validate:"max=20,dive,notblank,max=60"`
	BudgetMin        *int            `json:"budget_min" validate:"omitempty,min=0"`
	BudgetMax        *int            `json:"budget_max" validate:"omitempty,min=0"`
	Urgency          domain.Urgency  `json:"urgency" validate:"omitempty,oneof=low medium high urgent"`
	Cadence          domain.Cadence  `json:"cadence" validate:"omitempty,oneof=one-off weekly monthly"`
}

// BriefResponse is the public view of a brief.
type BriefResponse struct {
	ID               string             `json:"id"`
	CompanyID        string             `json:"company_id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	RoleTypeRequired domain.RoleType    `json:"role_type_required"`
	Niches           []string           `json:"niches"`
	BudgetMin        *int               `json:"budget_min"`
	BudgetMax        *int               `json:"budget_max"`
	BudgetLabel      string             `json:"budget_label"`
	Urgency          domain.Urgency     `json:"urgency"`
	Cadence          domain.Cadence     `json:"cadence"`
	Status           domain.BriefStatus `json:"status"`
	Company          *CompanyResponse   `json:"company,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// RecommendationResponse is one scored creator with its reason badges.
type RecommendationResponse struct {
	Creator CreatorResponse   `json:"creator"`
	Score   float64           `json:"score"`
	Badges  []recommend.Badge `json:"badges"`
}

// RecommendationsResponse lists a brief's recommendations, best first.
type RecommendationsResponse struct {
	Brief           BriefResponse            `json:"brief"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// NewBriefResponse maps a brief.
func NewBriefResponse(b *domain.Brief) BriefResponse {
	return BriefResponse{
		ID:               b.ID,
		CompanyID:        b.CompanyID,
		Title:            b.Title,
		Description:      b.Description,
		RoleTypeRequired: b.RoleTypeRequired,
		Niches:           nonNilStrings(b.Niches),
		BudgetMin:        b.BudgetMin,
		BudgetMax:        b.BudgetMax,
		BudgetLabel:      recommend.FormatBudget(b.BudgetMin, b.BudgetMax),
		Urgency:          b.Urgency,
		Cadence:          b.Cadence,
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// NewBriefWithCompanyResponse maps a brief joined with its company.
func NewBriefWithCompanyResponse(b *domain.BriefWithCompany) BriefResponse {
	resp := NewBriefResponse(&b.Brief)
	company := NewCompanyResponse(&b.Company)
	resp.Company = &company
	return resp
}
