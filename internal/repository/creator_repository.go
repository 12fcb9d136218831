package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

const creatorColumns = `id, user_id, name, role_type, niches, bio, substack_url, linkedin_url, samples,
               audience_size, pricing_tier, availability, subscribers, posts_count, activity_score,
               created_at, updated_at`

// CreatorQuery narrows a directory listing with exact-match columns.
// Free-text, niche and engagement criteria are applied by the directory filter.
type CreatorQuery struct {
	RoleType     *domain.RoleType
	PricingTier  *domain.PricingTier
	Availability *domain.Availability
}

// CreatorRepository persists creator profiles.
type CreatorRepository interface {
	Upsert(ctx context.Context, creator *domain.Creator) error
	GetByID(ctx context.Context, id string) (*domain.Creator, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Creator, error)
	List(ctx context.Context, query CreatorQuery) ([]domain.Creator, error)
}

type creatorRepository struct {
	pool *pgxpool.Pool
}

// NewCreatorRepository instantiates repository.
func NewCreatorRepository(pool *pgxpool.Pool) CreatorRepository {
	return &creatorRepository{pool: pool}
}

func (r *creatorRepository) Upsert(ctx context.Context, creator *domain.Creator) error {
	const query = `
        INSERT INTO creators (user_id, name, role_type, niches, bio, substack_url, linkedin_url, samples,
                              audience_size, pricing_tier, availability)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (user_id) DO UPDATE SET
            name=EXCLUDED.name,
            role_type=EXCLUDED.role_type,
            niches=EXCLUDED.niches,
            bio=EXCLUDED.bio,
            substack_url=EXCLUDED.substack_url,
            linkedin_url=EXCLUDED.linkedin_url,
            samples=EXCLUDED.samples,
            audience_size=EXCLUDED.audience_size,
            pricing_tier=EXCLUDED.pricing_tier,
            availability=EXCLUDED.availability,
            updated_at=NOW()
        RETURNING id, subscribers, posts_count, activity_score, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		creator.UserID,
		creator.Name,
		creator.RoleType,
		nonNil(creator.Niches),
		creator.Bio,
		creator.SubstackURL,
		creator.LinkedInURL,
		nonNil(creator.Samples),
		creator.AudienceSize,
		creator.PricingTier,
		creator.Availability,
	).Scan(
		&creator.ID,
		&creator.Subscribers,
		&creator.PostsCount,
		&creator.ActivityScore,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	)
}

func (r *creatorRepository) GetByID(ctx context.Context, id string) (*domain.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE id=$1`
	return scanCreator(r.pool.QueryRow(ctx, query, id))
}

func (r *creatorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE user_id=$1`
	return scanCreator(r.pool.QueryRow(ctx, query, userID))
}

// List returns creators newest first. The result is never nil.
func (r *creatorRepository) List(ctx context.Context, filter CreatorQuery) ([]domain.Creator, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RoleType != nil {
		args = append(args, *filter.RoleType)
		clauses = append(clauses, fmt.Sprintf("role_type=$%d", len(args)))
	}
	if filter.PricingTier != nil {
		args = append(args, *filter.PricingTier)
		clauses = append(clauses, fmt.Sprintf("pricing_tier=$%d", len(args)))
	}
	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		clauses = append(clauses, fmt.Sprintf("availability=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM creators WHERE %s ORDER BY created_at DESC`,
		creatorColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Creator{}
	for rows.Next() {
		creator, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *creator)
	}
	return result, rows.Err()
}

func scanCreator(row pgx.Row) (*domain.Creator, error) {
	var creator domain.Creator
	if err := row.Scan(
		&creator.ID,
		&creator.UserID,
		&creator.Name,
		&creator.RoleType,
		&creator.Niches,
		&creator.Bio,
		&creator.SubstackURL,
		&creator.LinkedInURL,
		&creator.Samples,
		&creator.AudienceSize,
		&creator.PricingTier,
		&creator.Availability,
		&creator.Subscribers,
		&creator.PostsCount,
		&creator.ActivityScore,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &creator, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
