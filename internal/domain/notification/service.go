package notification

import "context"

// NotificationService delivers fire-and-forget notifications: a stored
// record, a live SSE event, and (for timesheet submissions) an email.
// Delivery failures are logged, never propagated to the triggering operation.
type NotificationService interface {
	Notify(ctx context.Context, userID string, t Type, title, message string, referenceID *string)
	ListMine(ctx context.Context, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}
