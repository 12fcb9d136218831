package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// MessageRepository persists conversation messages. Messages are never updated.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByMatch(ctx context.Context, matchID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (match_id, sender_role, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.MatchID,
		message.SenderRole,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt)
}

// ListByMatch returns the match's messages oldest first.
func (r *messageRepository) ListByMatch(ctx context.Context, matchID string) ([]domain.Message, error) {
	const query = `
        SELECT id, match_id, sender_role, body, created_at
        FROM messages WHERE match_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.MatchID, &msg.SenderRole, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
