package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// Create implements notification.NotificationRepository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, reference_id, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.ReferenceID,
	).Scan(&n.CreatedAt)

	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// ListByUser implements notification.NotificationRepository.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, type, title, message, reference_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.ReferenceID,
			&n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead implements notification.NotificationRepository. Scoped to the
// owner so one user cannot mark another's notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	if _, err := q.Exec(ctx, query, id, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}
