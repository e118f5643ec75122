// internal/repository/notifications.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewNotificationRepository(db *sql.DB, log logger.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "notification-repository"}),
	}
}

// Record stores the outcome of a notification attempt for the audit
// trail and the admin activity view.
func (r *NotificationRepository) Record(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	payloadJSON, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", ErrDatabaseInsert, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, recipient_type, type, channel, status, payload, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID,
		n.RecipientID,
		n.RecipientType,
		n.Type,
		n.Channel,
		n.Status,
		payloadJSON,
		n.SentAt,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %w", ErrDatabaseInsert, err)
	}
	return nil
}

// ListRecent returns the latest notification attempts, newest first.
func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient_id, recipient_type, type, channel, status, payload, sent_at, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		var payloadJSON []byte
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.RecipientType, &n.Type, &n.Channel, &n.Status, &payloadJSON, &n.SentAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		if err := json.Unmarshal(payloadJSON, &n.Payload); err != nil {
			return nil, fmt.Errorf("%w: unmarshal payload: %w", ErrQueryFailed, err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return notifications, nil
}
