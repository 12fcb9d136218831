package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// CompanyRepository persists company profiles. A user owns at most one company.
type CompanyRepository interface {
	Upsert(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository instantiates repository.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) Upsert(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (user_id, name, website, contact_email, industries)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id) DO UPDATE SET
            name=EXCLUDED.name,
            website=EXCLUDED.website,
            contact_email=EXCLUDED.contact_email,
            industries=EXCLUDED.industries,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`
	industries := company.Industries
	if industries == nil {
		industries = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		company.UserID,
		company.Name,
		company.Website,
		company.ContactEmail,
		industries,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	const query = `
        SELECT id, user_id, name, website, contact_email, industries, created_at, updated_at
        FROM companies WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *companyRepository) GetByUserID(ctx context.Context, userID string) (*domain.Company, error) {
	const query = `
        SELECT id, user_id, name, website, contact_email, industries, created_at, updated_at
        FROM companies WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *companyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&company.ID,
		&company.UserID,
		&company.Name,
		&company.Website,
		&company.ContactEmail,
		&company.Industries,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}
