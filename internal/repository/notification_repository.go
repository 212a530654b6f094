package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements the NotificationRepository interface using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Insert persists a notification and returns its generated ID.
func (r *notificationRepository) Insert(ctx context.Context, n *model.Notification) (int64, error) {
	query := `
		INSERT INTO notifications (type, sender_id, receiver_id, title, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		n.Type, n.SenderID, n.ReceiverID, n.Title, n.Content,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("type", n.Type).Msg("failed to insert notification")
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}

	r.logger.Debug().Int64("notification_id", n.ID).Str("type", n.Type).Msg("notification inserted")

	return n.ID, nil
}

// ListUnread retrieves unread notifications addressed to the receiver,
// newest first.
func (r *notificationRepository) ListUnread(ctx context.Context, receiverID int64) ([]model.Notification, error) {
	query := `
		SELECT id, type, sender_id, receiver_id, title, content, is_read, created_at
		FROM notifications
		WHERE receiver_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, receiverID)
	if err != nil {
		r.logger.Error().Err(err).Int64("receiver_id", receiverID).Msg("failed to query unread notifications")
		return nil, fmt.Errorf("failed to query unread notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.SenderID,
			&n.ReceiverID,
			&n.Title,
			&n.Content,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flags a notification as read.
func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("notification_id", id).Msg("failed to mark notification read")
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
