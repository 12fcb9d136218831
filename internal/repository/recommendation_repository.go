package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// RecommendationRepository reads the scored v_recommendations view.
type RecommendationRepository interface {
	ListForBrief(ctx context.Context, briefID string, limit int) ([]domain.Recommendation, error)
}

type recommendationRepository struct {
	pool *pgxpool.Pool
}

// NewRecommendationRepository instantiates repository.
func NewRecommendationRepository(pool *pgxpool.Pool) RecommendationRepository {
	return &recommendationRepository{pool: pool}
}

func (r *recommendationRepository) ListForBrief(ctx context.Context, briefID string, limit int) ([]domain.Recommendation, error) {
	const query = `
        SELECT brief_id, ` + creatorColumnsFromView + `, score
        FROM v_recommendations
        WHERE brief_id=$1
        ORDER BY score DESC, creator_id
        LIMIT $2`
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx, query, briefID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Recommendation{}
	for rows.Next() {
		var rec domain.Recommendation
		c := &rec.Creator
		if err := rows.Scan(
			&rec.BriefID,
			&c.ID, &c.UserID, &c.Name, &c.RoleType, &c.Niches, &c.Bio, &c.SubstackURL, &c.LinkedInURL,
			&c.Samples, &c.AudienceSize, &c.PricingTier, &c.Availability, &c.Subscribers, &c.PostsCount,
			&c.ActivityScore, &c.CreatedAt, &c.UpdatedAt,
			&rec.Score,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

const creatorColumnsFromView = `creator_id, user_id, name, role_type, niches, bio, substack_url, linkedin_url,
               samples, audience_size, pricing_tier, availability, subscribers, posts_count, activity_score,
               created_at, updated_at`
