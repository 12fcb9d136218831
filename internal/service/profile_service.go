package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/cache"
	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/repository"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// ProfileService handles company and creator onboarding.
type ProfileService struct {
	companies repository.CompanyRepository
	creators  repository.CreatorRepository
	cache     cache.Cache
	events    eventPublisher
	logger    *zap.Logger
}

// ProfileDependencies bundles repositories for the profile service.
type ProfileDependencies struct {
	CompanyRepo repository.CompanyRepository
	CreatorRepo repository.CreatorRepository
	Cache       cache.Cache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// CompanyInput is the editable part of a company profile.
type CompanyInput struct {
	Name         string
	Website      *string
	ContactEmail *string
	Industries   []string
}

// CreatorInput is the editable part of a creator profile.
type CreatorInput struct {
	Name         string
	RoleType     domain.RoleType
	Niches       []string
	Bio          *string
	SubstackURL  *string
	LinkedInURL  *string
	Samples      []string
	AudienceSize *int
	PricingTier  domain.PricingTier
	Availability domain.Availability
}

// NewProfileService constructs the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := deps.Cache
	if c == nil {
		c = cache.Noop{}
	}
	return &ProfileService{
		companies: deps.CompanyRepo,
		creators:  deps.CreatorRepo,
		cache:     c,
		events:    eventPublisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:    logger,
	}
}

// SaveCompany creates or updates the caller's company profile.
func (s *ProfileService) SaveCompany(ctx context.Context, userID string, input CompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("company name is required", map[string]any{"name": "required"})
	}
	company := &domain.Company{
		UserID:       userID,
		Name:         name,
		Website:      trimPtr(input.Website),
		ContactEmail: trimPtr(input.ContactEmail),
		Industries:   normalizeTags(input.Industries),
	}
	if err := s.companies.Upsert(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// MyCompany returns the caller's company profile.
func (s *ProfileService) MyCompany(ctx context.Context, userID string) (*domain.Company, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("company profile", nil)
		}
		return nil, err
	}
	return company, nil
}

// SaveCreator creates or updates the caller's creator profile and refreshes the directory.
func (s *ProfileService) SaveCreator(ctx context.Context, userID string, input CreatorInput) (*domain.Creator, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("creator name is required", map[string]any{"name": "required"})
	}
	if !input.RoleType.Valid() {
		return nil, apperrors.NewValidationError("invalid role type", map[string]any{"role_type": string(input.RoleType)})
	}
	if input.AudienceSize != nil && *input.AudienceSize < 0 {
		return nil, apperrors.NewValidationError("audience size must not be negative", nil)
	}

	creator := &domain.Creator{
		UserID:       userID,
		Name:         name,
		RoleType:     input.RoleType,
		Niches:       normalizeTags(input.Niches),
		Bio:          trimPtr(input.Bio),
		SubstackURL:  trimPtr(input.SubstackURL),
		LinkedInURL:  trimPtr(input.LinkedInURL),
		Samples:      normalizeTags(input.Samples),
		AudienceSize: input.AudienceSize,
		PricingTier:  input.PricingTier,
		Availability: input.Availability,
	}
	if creator.PricingTier == "" {
		creator.PricingTier = domain.PricingMid
	}
	if creator.Availability == "" {
		creator.Availability = domain.AvailabilityOpen
	}

	if err := s.creators.Upsert(ctx, creator); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)

	s.events.publish(ctx, events.Event{
		Type:       events.EventCreatorProfileSaved,
		ResourceID: creator.ID,
		Actor:      userActor(userID),
		Payload: events.CreatorProfileSavedPayload{
			CreatorID: creator.ID,
			Created:   creator.CreatedAt.Equal(creator.UpdatedAt),
		},
	})
	return creator, nil
}

// MyCreator returns the caller's creator profile.
func (s *ProfileService) MyCreator(ctx context.Context, userID string) (*domain.Creator, error) {
	creator, err := s.creators.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("creator profile", nil)
		}
		return nil, err
	}
	return creator, nil
}

// Creator returns any creator profile by id.
func (s *ProfileService) Creator(ctx context.Context, id string) (*domain.Creator, error) {
	creator, err := s.creators.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("creator", map[string]any{"creator_id": id})
		}
		return nil, err
	}
	return creator, nil
}

func (s *ProfileService) invalidateDirectory(ctx context.Context) {
	if err := s.cache.Bump(ctx, cache.DirectoryFamily); err != nil {
		s.logger.Warn("directory cache invalidation failed", zap.Error(err))
	}
	if err := s.cache.Bump(ctx, cache.RecommendationsFamily); err != nil {
		s.logger.Warn("recommendation cache invalidation failed", zap.Error(err))
	}
}
