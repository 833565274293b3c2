package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"realtor-api/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg domain.Message) (domain.Message, error)
	ListByHome(ctx context.Context, homeID int64) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const query = `
		INSERT INTO messages (body, home_id, realtor_id, buyer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		msg.Body,
		msg.HomeID,
		msg.RealtorID,
		msg.BuyerID,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return domain.Message{}, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

func (r *PgMessageRepository) ListByHome(ctx context.Context, homeID int64) ([]domain.Message, error) {
	const query = `
		SELECT id, body, home_id, realtor_id, buyer_id, created_at
		FROM messages
		WHERE home_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, homeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Body, &m.HomeID, &m.RealtorID, &m.BuyerID, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
