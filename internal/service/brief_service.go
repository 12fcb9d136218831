package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/repository"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// BriefService manages company briefs.
type BriefService struct {
	briefs    repository.BriefRepository
	companies repository.CompanyRepository
	events    eventPublisher
}

// BriefDependencies bundles repositories for the brief service.
type BriefDependencies struct {
	BriefRepo   repository.BriefRepository
	CompanyRepo repository.CompanyRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// BriefInput describes brief creation payload.
type BriefInput struct {
	Title            string
	Description      string
	RoleTypeRequired domain.RoleType
	Niches           []string
	BudgetMin        *int
	BudgetMax        *int
	Urgency          domain.Urgency
	Cadence          domain.Cadence
}

// NewBriefService constructs the service.
func NewBriefService(deps BriefDependencies) *BriefService {
	return &BriefService{
		briefs:    deps.BriefRepo,
		companies: deps.CompanyRepo,
		events:    eventPublisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Create posts a new open brief for the caller's company.
func (s *BriefService) Create(ctx context.Context, userID string, input BriefInput) (*domain.Brief, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewForbidden("a company profile is required to post briefs")
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", map[string]any{"title": "required"})
	}
	if !input.RoleTypeRequired.Valid() {
		return nil, apperrors.NewValidationError("invalid role type", map[string]any{"role_type_required": string(input.RoleTypeRequired)})
	}
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMin > *input.BudgetMax {
		return nil, apperrors.NewValidationError("budget_min must not exceed budget_max", nil)
	}

	brief := &domain.Brief{
		CompanyID:        company.ID,
		Title:            title,
		Description:      strings.TrimSpace(input.Description),
		RoleTypeRequired: input.RoleTypeRequired,
		Niches:           normalizeTags(input.Niches),
		BudgetMin:        input.BudgetMin,
		BudgetMax:        input.BudgetMax,
		Urgency:          input.Urgency,
		Cadence:          input.Cadence,
		Status:           domain.BriefStatusOpen,
	}
	if brief.Urgency == "" {
		brief.Urgency = domain.UrgencyMedium
	}
	if brief.Cadence == "" {
		brief.Cadence = domain.CadenceMonthly
	}

	if err := s.briefs.Create(ctx, brief); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{
		Type:       events.EventBriefCreated,
		ResourceID: brief.ID,
		Actor:      userActor(userID),
		Payload: events.BriefCreatedPayload{
			CompanyID:        company.ID,
			Title:            brief.Title,
			RoleTypeRequired: brief.RoleTypeRequired,
			Niches:           brief.Niches,
		},
	})
	return brief, nil
}

// Get returns a brief with its company.
func (s *BriefService) Get(ctx context.Context, id string) (*domain.BriefWithCompany, error) {
	brief, err := s.briefs.GetWithCompany(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("brief", map[string]any{"brief_id": id})
		}
		return nil, err
	}
	return brief, nil
}

// ListMine returns the caller company's briefs, optionally narrowed to one status.
// A caller without a company has no briefs.
func (s *BriefService) ListMine(ctx context.Context, userID string, status *domain.BriefStatus) ([]domain.Brief, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return []domain.Brief{}, nil
		}
		return nil, err
	}
	return s.briefs.ListByCompany(ctx, company.ID, status)
}

// Close marks a brief closed. Only the owning company may close it.
func (s *BriefService) Close(ctx context.Context, userID, briefID string) (*domain.Brief, error) {
	brief, err := s.OwnedBrief(ctx, userID, briefID)
	if err != nil {
		return nil, err
	}
	if brief.Status == domain.BriefStatusClosed {
		return &brief.Brief, nil
	}
	if err := s.briefs.UpdateStatus(ctx, briefID, domain.BriefStatusClosed); err != nil {
		return nil, err
	}
	brief.Status = domain.BriefStatusClosed
	s.events.publish(ctx, events.Event{
		Type:       events.EventBriefClosed,
		ResourceID: briefID,
		Actor:      userActor(userID),
		Payload:    events.BriefClosedPayload{CompanyID: brief.CompanyID},
	})
	return &brief.Brief, nil
}

// OwnedBrief loads a brief and checks that userID owns its company.
func (s *BriefService) OwnedBrief(ctx context.Context, userID, briefID string) (*domain.BriefWithCompany, error) {
	brief, err := s.Get(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if brief.Company.UserID != userID {
		return nil, apperrors.NewForbidden("only the brief's company can do this")
	}
	return brief, nil
}
