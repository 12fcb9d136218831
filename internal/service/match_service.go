package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/conversation"
	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/observability"
	"github.com/matchstack-dev/matchstack/internal/repository"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// MatchService pairs briefs with creators.
type MatchService struct {
	briefs   *BriefService
	matches  repository.MatchRepository
	creators repository.CreatorRepository
	events   eventPublisher
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// MatchDependencies bundles collaborators.
type MatchDependencies struct {
	Briefs      *BriefService
	MatchRepo   repository.MatchRepository
	CreatorRepo repository.CreatorRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// MatchResult reports the match for a pair and whether this call created it.
type MatchResult struct {
	Match   *domain.Match
	Created bool
}

// NewMatchService constructs the service.
func NewMatchService(deps MatchDependencies) *MatchService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchService{
		briefs:   deps.Briefs,
		matches:  deps.MatchRepo,
		creators: deps.CreatorRepo,
		events:   eventPublisher{dispatcher: deps.Dispatcher, logger: logger},
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// Shortlist marks the creator as shortlisted for the brief, creating the match if needed.
func (s *MatchService) Shortlist(ctx context.Context, userID, briefID, creatorID string) (*MatchResult, error) {
	return s.upsert(ctx, userID, briefID, creatorID, domain.MatchStatusShortlisted, true)
}

// Contact returns the pair's existing match, or creates one as contacted, so a conversation can start.
func (s *MatchService) Contact(ctx context.Context, userID, briefID, creatorID string) (*MatchResult, error) {
	return s.upsert(ctx, userID, briefID, creatorID, domain.MatchStatusContacted, false)
}

// Propose suggests the creator for the brief without touching an existing match.
func (s *MatchService) Propose(ctx context.Context, userID, briefID, creatorID string) (*MatchResult, error) {
	return s.upsert(ctx, userID, briefID, creatorID, domain.MatchStatusSuggested, false)
}

// ListForBrief returns the brief's matches. Only the brief's company may list them.
func (s *MatchService) ListForBrief(ctx context.Context, userID, briefID string) ([]domain.Match, error) {
	if _, err := s.briefs.OwnedBrief(ctx, userID, briefID); err != nil {
		return nil, err
	}
	return s.matches.ListByBrief(ctx, briefID)
}

// SetStatus moves a match to any status. The company side may set every status;
// the creator side may only decline.
func (s *MatchService) SetStatus(ctx context.Context, userID, matchID string, status domain.MatchStatus) (*domain.Match, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid match status", map[string]any{"status": string(status)})
	}
	parties, err := s.matches.GetWithParties(ctx, matchID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewMatchNotFound(matchID)
		}
		return nil, err
	}

	switch conversation.Resolve(parties, userID) {
	case conversation.AccessCompany:
	case conversation.AccessCreator:
		if status != domain.MatchStatusDeclined {
			return nil, apperrors.NewForbidden("creators can only decline a match")
		}
	default:
		return nil, apperrors.NewNoAccess(matchID)
	}

	old := parties.Status
	match := parties.Match
	if old == status {
		return &match, nil
	}
	if err := s.matches.UpdateStatus(ctx, matchID, status); err != nil {
		return nil, err
	}
	match.Status = status

	s.events.publish(ctx, events.Event{
		Type:       events.EventMatchStatusChanged,
		ResourceID: matchID,
		Actor:      userActor(userID),
		Payload:    events.MatchStatusChangedPayload{OldStatus: old, NewStatus: status},
	})
	return &match, nil
}

func (s *MatchService) upsert(ctx context.Context, userID, briefID, creatorID string, status domain.MatchStatus, overwrite bool) (*MatchResult, error) {
	brief, err := s.briefs.OwnedBrief(ctx, userID, briefID)
	if err != nil {
		return nil, err
	}
	creator, err := s.creators.GetByID(ctx, creatorID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("creator", map[string]any{"creator_id": creatorID})
		}
		return nil, err
	}

	match := &domain.Match{BriefID: briefID, CreatorID: creatorID, Status: status}
	created, err := s.matches.Upsert(ctx, match, overwrite)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMatch(string(match.Status), created)

	if created {
		s.logger.Info("match created",
			zap.String("match_id", match.ID),
			zap.String("brief_id", briefID),
			zap.String("creator_id", creatorID),
			zap.String("status", string(match.Status)))
		s.events.publish(ctx, events.Event{
			Type:       events.EventMatchCreated,
			ResourceID: match.ID,
			Actor:      userActor(userID),
			Payload: events.MatchCreatedPayload{
				BriefID:         briefID,
				BriefTitle:      brief.Title,
				CreatorID:       creatorID,
				Status:          match.Status,
				RecipientUserID: creator.UserID,
			},
		})
	}
	return &MatchResult{Match: match, Created: created}, nil
}
