package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// messageRepository implements the MessageRepository interface using PostgreSQL.
type messageRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMessageRepository creates a new PostgreSQL-backed message repository.
func NewMessageRepository(pool *pgxpool.Pool, logger zerolog.Logger) MessageRepository {
	return &messageRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "message").Logger(),
	}
}

// Insert appends a chat message and returns its generated ID.
func (r *messageRepository) Insert(ctx context.Context, m *model.Message) (int64, error) {
	query := `
		INSERT INTO messages (sender_type, sender_id, receiver_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		m.SenderType, m.SenderID, m.ReceiverID, m.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("sender_type", m.SenderType).
			Int64("sender_id", m.SenderID).
			Msg("failed to insert message")
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	return m.ID, nil
}
