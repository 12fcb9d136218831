package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/cache"
	"github.com/matchstack-dev/matchstack/internal/directory"
	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/observability"
	"github.com/matchstack-dev/matchstack/internal/repository"
)

// DirectoryService serves the filterable creator directory.
type DirectoryService struct {
	creators repository.CreatorRepository
	cache    cache.Cache
	ttl      time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// DirectoryDependencies bundles collaborators for the directory service.
type DirectoryDependencies struct {
	CreatorRepo repository.CreatorRepository
	Cache       cache.Cache
	TTL         time.Duration
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// DirectoryPage is one filtered view of the directory.
type DirectoryPage struct {
	Creators []domain.Creator
	// Total counts the unfiltered directory.
	Total int
	// Niches is the sorted niche catalogue of the unfiltered directory.
	Niches []string
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := deps.Cache
	if c == nil {
		c = cache.Noop{}
	}
	return &DirectoryService{
		creators: deps.CreatorRepo,
		cache:    c,
		ttl:      deps.TTL,
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// List loads every creator, newest first, and applies the criteria.
func (s *DirectoryService) List(ctx context.Context, criteria directory.Criteria) (*DirectoryPage, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return &DirectoryPage{
		Creators: directory.Filter(all, criteria),
		Total:    len(all),
		Niches:   directory.Niches(all),
	}, nil
}

func (s *DirectoryService) all(ctx context.Context) ([]domain.Creator, error) {
	gen, err := s.cache.Generation(ctx, cache.DirectoryFamily)
	if err != nil {
		s.logger.Warn("directory cache generation unavailable", zap.Error(err))
		return s.creators.List(ctx, repository.CreatorQuery{})
	}
	key := cache.DirectoryKey(gen)

	var cached []domain.Creator
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("directory cache read failed", zap.Error(err))
	}
	s.metrics.RecordCache("directory", hit)
	if hit && cached != nil {
		return cached, nil
	}

	creators, err := s.creators.List(ctx, repository.CreatorQuery{})
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, creators, s.ttl); err != nil {
			s.logger.Warn("directory cache write failed", zap.Error(err))
		}
	}
	return creators, nil
}
