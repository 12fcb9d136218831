package dto

import (
	"time"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// MatchPairRequest names the brief and creator a match action applies to.
type MatchPairRequest struct {
	BriefID   string `json:"brief_id" validate:"required,uuid"`
	CreatorID string `json:"creator_id" validate:"required,uuid"`
}

// MatchStatusRequest moves a match to a new status.
type MatchStatusRequest struct {
	Status domain.MatchStatus `json:"status" validate:"required,match_status"`
}

// MatchResponse is the public view of a match.
type MatchResponse struct {
	ID        string             `json:"id"`
	BriefID   string             `json:"brief_id"`
	CreatorID string             `json:"creator_id"`
	Status    domain.MatchStatus `json:"status"`
	Created   bool               `json:"created,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// MatchPartiesResponse is a match header with both sides' owners.
type MatchPartiesResponse struct {
	MatchResponse
	BriefTitle     string `json:"brief_title"`
	CompanyID      string `json:"company_id"`
	CompanyName    string `json:"company_name"`
	CompanyOwnerID string `json:"company_owner_id"`
	CreatorName    string `json:"creator_name"`
	CreatorOwnerID string `json:"creator_owner_id"`
}

// NewMatchResponse maps a match.
func NewMatchResponse(m *domain.Match) MatchResponse {
	return MatchResponse{
		ID:        m.ID,
		BriefID:   m.BriefID,
		CreatorID: m.CreatorID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewMatchPartiesResponse maps a match header.
func NewMatchPartiesResponse(p *domain.MatchParties) MatchPartiesResponse {
	return MatchPartiesResponse{
		MatchResponse:  NewMatchResponse(&p.Match),
		BriefTitle:     p.BriefTitle,
		CompanyID:      p.CompanyID,
		CompanyName:    p.CompanyName,
		CompanyOwnerID: p.CompanyOwnerID,
		CreatorName:    p.CreatorName,
		CreatorOwnerID: p.CreatorOwnerID,
	}
}

// ToDomain converts the header back into the domain shape.
func (r MatchPartiesResponse) ToDomain() domain.MatchParties {
	return domain.MatchParties{
		Match: domain.Match{
			ID:        r.ID,
			BriefID:   r.BriefID,
			CreatorID: r.CreatorID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		BriefTitle:     r.BriefTitle,
		CompanyID:      r.CompanyID,
		CompanyName:    r.CompanyName,
		CompanyOwnerID: r.CompanyOwnerID,
		CreatorName:    r.CreatorName,
		CreatorOwnerID: r.CreatorOwnerID,
	}
}
