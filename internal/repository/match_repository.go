package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// MatchRepository encapsulates match persistence. A (brief, creator) pair has at most one match.
type MatchRepository interface {
	// Upsert creates the match for the pair or returns the existing one. When overwrite is set,
	// an existing match takes the new status; otherwise its status is left untouched.
	// The returned flag reports whether a new row was inserted.
	Upsert(ctx context.Context, match *domain.Match, overwrite bool) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetWithParties(ctx context.Context, id string) (*domain.MatchParties, error)
	ListByBrief(ctx context.Context, briefID string) ([]domain.Match, error)
	UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) error
}

type matchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository instantiates repository.
func NewMatchRepository(pool *pgxpool.Pool) MatchRepository {
	return &matchRepository{pool: pool}
}

func (r *matchRepository) Upsert(ctx context.Context, match *domain.Match, overwrite bool) (bool, error) {
	// The no-op update on conflict makes RETURNING yield the existing row.
	// xmax is zero only for freshly inserted tuples.
	const query = `
        INSERT INTO matches (brief_id, creator_id, status)
        VALUES ($1,$2,$3)
        ON CONFLICT (brief_id, creator_id) DO UPDATE SET
            status = CASE WHEN $4::boolean THEN EXCLUDED.status ELSE matches.status END,
            updated_at = CASE WHEN $4::boolean THEN NOW() ELSE matches.updated_at END
        RETURNING id, status, created_at, updated_at, (xmax = 0) AS inserted`
	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		match.BriefID,
		match.CreatorID,
		match.Status,
		overwrite,
	).Scan(&match.ID, &match.Status, &match.CreatedAt, &match.UpdatedAt, &inserted)
	return inserted, err
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	const query = `
        SELECT id, brief_id, creator_id, status, created_at, updated_at
        FROM matches WHERE id=$1`
	var match domain.Match
	if err := scanMatch(r.pool.QueryRow(ctx, query, id), &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetWithParties loads the match joined with brief, company and creator ownership.
func (r *matchRepository) GetWithParties(ctx context.Context, id string) (*domain.MatchParties, error) {
	const query = `
        SELECT m.id, m.brief_id, m.creator_id, m.status, m.created_at, m.updated_at,
               b.title, co.id, co.name, co.user_id, cr.name, cr.user_id
        FROM matches m
        JOIN briefs b ON b.id = m.brief_id
        JOIN companies co ON co.id = b.company_id
        JOIN creators cr ON cr.id = m.creator_id
        WHERE m.id=$1`
	var parties domain.MatchParties
	m := &parties.Match
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.BriefID, &m.CreatorID, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		&parties.BriefTitle,
		&parties.CompanyID,
		&parties.CompanyName,
		&parties.CompanyOwnerID,
		&parties.CreatorName,
		&parties.CreatorOwnerID,
	); err != nil {
		return nil, err
	}
	return &parties, nil
}

func (r *matchRepository) ListByBrief(ctx context.Context, briefID string) ([]domain.Match, error) {
	const query = `
        SELECT id, brief_id, creator_id, status, created_at, updated_at
        FROM matches WHERE brief_id=$1
        ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, briefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Match{}
	for rows.Next() {
		var match domain.Match
		if err := scanMatch(rows, &match); err != nil {
			return nil, err
		}
		result = append(result, match)
	}
	return result, rows.Err()
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) error {
	const query = `UPDATE matches SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMatch(row pgx.Row, match *domain.Match) error {
	return row.Scan(
		&match.ID,
		&match.BriefID,
		&match.CreatorID,
		&match.Status,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
}
