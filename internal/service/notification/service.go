package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/email"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/sse"
)

// Config holds notification worker configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

type service struct {
	repo     notification.NotificationRepository
	userRepo user.UserRepository
	hub      *sse.Hub
	email    email.EmailService

	queue  chan notification.Notification
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts background workers that persist each
// notification, push it over SSE, and send email where the type calls for it.
func NewNotificationService(
	repo notification.NotificationRepository,
	userRepo user.UserRepository,
	hub *sse.Hub,
	emailService email.EmailService,
	cfg Config,
) notification.NotificationService {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		email:    emailService,
		queue:    make(chan notification.Notification, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// Notify implements notification.NotificationService. Non-blocking: a full
// queue drops the notification with a log line rather than stalling the
// triggering operation.
func (s *service) Notify(ctx context.Context, userID string, t notification.Type, title, message string, referenceID *string) {
	n := notification.Notification{
		ID:          uuid.Must(uuid.NewV7()).String(),
		UserID:      userID,
		Type:        t,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
		CreatedAt:   time.Now().UTC(),
	}

	select {
	case s.queue <- n:
	default:
		slog.Warn("notification queue full, dropping", "user_id", userID, "type", t)
	}
}

// ListMine implements notification.NotificationService.
func (s *service) ListMine(ctx context.Context, limit int) ([]notification.Notification, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, actor.ID, limit)
}

// MarkRead implements notification.NotificationService.
func (s *service) MarkRead(ctx context.Context, id string) error {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id, actor.ID)
}

// Stop drains the workers.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *service) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case n := <-s.queue:
			s.deliver(n)
		}
	}
}

// deliver persists the record, publishes the SSE event, and sends email for
// the types that warrant one. Each leg fails independently.
func (s *service) deliver(n notification.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		slog.Error("failed to persist notification", "user_id", n.UserID, "type", n.Type, "error", err)
		stored = n
	}

	s.hub.Publish(n.UserID, sse.Event{
		UserID: n.UserID,
		Event:  string(n.Type),
		Data:   stored,
	})

	switch n.Type {
	case notification.TypeTimesheetSubmitted, notification.TypeTimesheetRejected:
		s.sendEmail(ctx, n)
	}
}

func (s *service) sendEmail(ctx context.Context, n notification.Notification) {
	recipient, err := s.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		slog.Error("failed to resolve notification recipient", "user_id", n.UserID, "error", err)
		return
	}

	switch n.Type {
	case notification.TypeTimesheetSubmitted:
		reviewLink := ""
		if n.ReferenceID != nil {
			reviewLink = "/timesheets/" + *n.ReferenceID
		}
		err = s.email.SendTimesheetSubmitted(recipient.Email, recipient.Name, n.Message, reviewLink)
	case notification.TypeTimesheetRejected:
		err = s.email.SendTimesheetRejected(recipient.Email, recipient.Name, n.Message)
	}
	if err != nil {
		slog.Error("failed to send timesheet email", "user_id", n.UserID, "type", n.Type, "error", err)
	}
}
