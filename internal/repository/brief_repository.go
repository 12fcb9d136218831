package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// BriefRepository encapsulates brief persistence.
type BriefRepository interface {
	Create(ctx context.Context, brief *domain.Brief) error
	GetByID(ctx context.Context, id string) (*domain.Brief, error)
	GetWithCompany(ctx context.Context, id string) (*domain.BriefWithCompany, error)
	ListByCompany(ctx context.Context, companyID string, status *domain.BriefStatus) ([]domain.Brief, error)
	UpdateStatus(ctx context.Context, id string, status domain.BriefStatus) error
}

type briefRepository struct {
	pool *pgxpool.Pool
}

// NewBriefRepository instantiates repository.
func NewBriefRepository(pool *pgxpool.Pool) BriefRepository {
	return &briefRepository{pool: pool}
}

func (r *briefRepository) Create(ctx context.Context, brief *domain.Brief) error {
	const query = `
        INSERT INTO briefs (company_id, title, description, role_type_required, niches, budget_min, budget_max,
                            urgency, cadence, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		brief.CompanyID,
		brief.Title,
		brief.Description,
		brief.RoleTypeRequired,
		nonNil(brief.Niches),
		brief.BudgetMin,
		brief.BudgetMax,
		brief.Urgency,
		brief.Cadence,
		brief.Status,
	).Scan(&brief.ID, &brief.CreatedAt, &brief.UpdatedAt)
}

func (r *briefRepository) GetByID(ctx context.Context, id string) (*domain.Brief, error) {
	const query = `
        SELECT id, company_id, title, description, role_type_required, niches, budget_min, budget_max,
               urgency, cadence, status, created_at, updated_at
        FROM briefs WHERE id=$1`
	var brief domain.Brief
	if err := scanBrief(r.pool.QueryRow(ctx, query, id), &brief); err != nil {
		return nil, err
	}
	return &brief, nil
}

func (r *briefRepository) GetWithCompany(ctx context.Context, id string) (*domain.BriefWithCompany, error) {
	const query = `
        SELECT b.id, b.company_id, b.title, b.description, b.role_type_required, b.niches, b.budget_min,
               b.budget_max, b.urgency, b.cadence, b.status, b.created_at, b.updated_at,
               c.id, c.user_id, c.name, c.website, c.contact_email, c.industries, c.created_at, c.updated_at
        FROM briefs b
        JOIN companies c ON c.id = b.company_id
        WHERE b.id=$1`
	var result domain.BriefWithCompany
	b := &result.Brief
	c := &result.Company
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CompanyID, &b.Title, &b.Description, &b.RoleTypeRequired, &b.Niches, &b.BudgetMin,
		&b.BudgetMax, &b.Urgency, &b.Cadence, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&c.ID, &c.UserID, &c.Name, &c.Website, &c.ContactEmail, &c.Industries, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByCompany returns the company's briefs newest first, optionally narrowed to one status.
func (r *briefRepository) ListByCompany(ctx context.Context, companyID string, status *domain.BriefStatus) ([]domain.Brief, error) {
	const query = `
        SELECT id, company_id, title, description, role_type_required, niches, budget_min, budget_max,
               urgency, cadence, status, created_at, updated_at
        FROM briefs
        WHERE company_id=$1 AND ($2::text IS NULL OR status=$2)
        ORDER BY created_at DESC`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	rows, err := r.pool.Query(ctx, query, companyID, statusArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Brief{}
	for rows.Next() {
		var brief domain.Brief
		if err := scanBrief(rows, &brief); err != nil {
			return nil, err
		}
		result = append(result, brief)
	}
	return result, rows.Err()
}

func (r *briefRepository) UpdateStatus(ctx context.Context, id string, status domain.BriefStatus) error {
	const query = `UPDATE briefs SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanBrief(row pgx.Row, brief *domain.Brief) error {
	return row.Scan(
		&brief.ID,
		&brief.CompanyID,
		&brief.Title,
		&brief.Description,
		&brief.RoleTypeRequired,
		&brief.Niches,
		&brief.BudgetMin,
		&brief.BudgetMax,
		&brief.Urgency,
		&brief.Cadence,
		&brief.Status,
		&brief.CreatedAt,
		&brief.UpdatedAt,
	)
}
