package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/cache"
	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/observability"
	"github.com/matchstack-dev/matchstack/internal/recommend"
	"github.com/matchstack-dev/matchstack/internal/repository"
)

// RecommendationService returns the best scored creators for a brief.
type RecommendationService struct {
	briefs          *BriefService
	recommendations repository.RecommendationRepository
	cache           cache.Cache
	ttl             time.Duration
	limit           int
	metrics         *observability.Metrics
	logger          *zap.Logger
}

// RecommendationDependencies bundles collaborators.
type RecommendationDependencies struct {
	Briefs             *BriefService
	RecommendationRepo repository.RecommendationRepository
	Cache              cache.Cache
	TTL                time.Duration
	Limit              int
	Metrics            *observability.Metrics
	Logger             *zap.Logger
}

// Recommendation is a scored creator with the reasons it fits the brief.
type Recommendation struct {
	domain.Recommendation
	Badges []recommend.Badge
}

// NewRecommendationService constructs the service.
func NewRecommendationService(deps RecommendationDependencies) *RecommendationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := deps.Cache
	if c == nil {
		c = cache.Noop{}
	}
	limit := deps.Limit
	if limit <= 0 {
		limit = 5
	}
	return &RecommendationService{
		briefs:          deps.Briefs,
		recommendations: deps.RecommendationRepo,
		cache:           c,
		ttl:             deps.TTL,
		limit:           limit,
		metrics:         deps.Metrics,
		logger:          logger,
	}
}

// ForBrief returns the top recommendations, highest score first. Only the brief's company may read them.
func (s *RecommendationService) ForBrief(ctx context.Context, userID, briefID string) (*domain.BriefWithCompany, []Recommendation, error) {
	brief, err := s.briefs.OwnedBrief(ctx, userID, briefID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.load(ctx, &brief.Brief)
	if err != nil {
		return nil, nil, err
	}

	result := make([]Recommendation, 0, len(rows))
	for i := range rows {
		result = append(result, Recommendation{
			Recommendation: rows[i],
			Badges:         recommend.Reasons(&brief.Brief, &rows[i].Creator),
		})
	}
	return brief, result, nil
}

func (s *RecommendationService) load(ctx context.Context, brief *domain.Brief) ([]domain.Recommendation, error) {
	gen, err := s.cache.Generation(ctx, cache.RecommendationsFamily)
	if err != nil {
		s.logger.Warn("recommendation cache generation unavailable", zap.Error(err))
		return s.recommendations.ListForBrief(ctx, brief.ID, s.limit)
	}
	key := cache.RecommendationsKey(gen, brief.ID, string(brief.Status), s.limit)

	var cached []domain.Recommendation
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("recommendation cache read failed", zap.Error(err))
	}
	s.metrics.RecordCache("recommendations", hit)
	if hit && cached != nil {
		return cached, nil
	}

	rows, err := s.recommendations.ListForBrief(ctx, brief.ID, s.limit)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, rows, s.ttl); err != nil {
			s.logger.Warn("recommendation cache write failed", zap.Error(err))
		}
	}
	return rows, nil
}
