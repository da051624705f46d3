package notification

import (
	"context"
	"errors"
	"strings"
	"time"

	"smarthub/database"
	notificationRepo "smarthub/database/repository/notification"
	providerRepo "smarthub/database/repository/provider"
	userRepo "smarthub/database/repository/user"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap"
)

// NotificationService is the per-receiver inbox. Delivery is pull based:
// consumers poll ListFor / UnreadCount. Push is a best-effort extra.
type NotificationService interface {
	// Notify appends a notification after checking the receiver exists.
	Notify(ctx context.Context, rcv models.Receiver, typ models.NotificationType, message string, relatedBookingID *int64) (*models.Notification, error)
	// Emit inserts n using ctx, which may carry a transaction. The caller
	// must call Published once that transaction has committed.
	Emit(ctx context.Context, n *models.Notification) error
	// Published runs the after-commit hooks for n.
	Published(ctx context.Context, n models.Notification)
	ListFor(ctx context.Context, rcv models.Receiver) ([]models.Notification, error)
	MarkRead(ctx context.Context, actor models.Actor, notificationID int64) error
	MarkAllRead(ctx context.Context, rcv models.Receiver) error
	UnreadCount(ctx context.Context, rcv models.Receiver) (int64, error)
}

// Dispatcher hands a stored notification to the push pipeline.
type Dispatcher interface {
	EnqueuePush(ctx context.Context, n models.Notification) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo       notificationRepo.NotificationRepository
	Users      userRepo.UserRepository
	Providers  providerRepo.ProviderRepository
	Cache      UnreadCache
	Dispatcher Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *DefaultNotificationService) cache() UnreadCache {
	if s.Cache == nil {
		return noCache{}
	}
	return s.Cache
}

func (s *DefaultNotificationService) Notify(ctx context.Context, rcv models.Receiver, typ models.NotificationType, message string, relatedBookingID *int64) (*models.Notification, error) {
	if !rcv.Type.Valid() {
		return nil, apperr.Validation("unknown receiver type %q", rcv.Type)
	}
	if err := s.receiverExists(ctx, rcv); err != nil {
		return nil, err
	}

	n := &models.Notification{
		ReceiverID:       rcv.ID,
		ReceiverType:     rcv.Type,
		Type:             typ,
		Message:          message,
		RelatedBookingID: relatedBookingID,
	}
	if err := s.Emit(ctx, n); err != nil {
		return nil, err
	}
	s.Published(ctx, *n)
	return n, nil
}

func (s *DefaultNotificationService) receiverExists(ctx context.Context, rcv models.Receiver) error {
	var err error
	switch rcv.Type {
	case models.ReceiverUser:
		_, err = s.Users.GetByID(ctx, rcv.ID)
	case models.ReceiverProvider:
		_, err = s.Providers.GetByID(ctx, rcv.ID)
	}
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("%s %d not found", strings.ToLower(string(rcv.Type)), rcv.ID)
	}
	if err != nil {
		return apperr.Transport(err, "failed to look up receiver")
	}
	return nil
}

func (s *DefaultNotificationService) Emit(ctx context.Context, n *models.Notification) error {
	if strings.TrimSpace(n.Message) == "" {
		return apperr.Validation("notification message is required")
	}
	if n.Type == "" {
		return apperr.Validation("notification type is required")
	}
	if !n.ReceiverType.Valid() {
		return apperr.Validation("unknown receiver type %q", n.ReceiverType)
	}

	n.Status = models.NotificationUnread
	n.CreatedAt = s.now()
	if err := s.Repo.Create(ctx, n); err != nil {
		return apperr.Transport(err, "failed to store notification")
	}
	return nil
}

func (s *DefaultNotificationService) Published(ctx context.Context, n models.Notification) {
	s.cache().Invalidate(ctx, n.Receiver())

	if s.Dispatcher == nil {
		return
	}
	if err := s.Dispatcher.EnqueuePush(ctx, n); err != nil {
		s.logger().Warn("Failed to enqueue push",
			zap.Int64("notificationId", n.ID),
			zap.Error(err),
		)
	}
}

func (s *DefaultNotificationService) ListFor(ctx context.Context, rcv models.Receiver) ([]models.Notification, error) {
	list, err := s.Repo.ListByReceiver(ctx, rcv)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load notifications")
	}
	return list, nil
}

// MarkRead hides notifications addressed to someone else behind NotFound.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, actor models.Actor, notificationID int64) error {
	n, err := s.Repo.GetByID(ctx, notificationID)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("notification %d not found", notificationID)
	}
	if err != nil {
		return apperr.Transport(err, "failed to load notification")
	}
	if rcv, ok := actor.Receiver(); !ok || rcv != n.Receiver() {
		return apperr.NotFound("notification %d not found", notificationID)
	}
	if n.Status == models.NotificationRead {
		return nil
	}

	if err := s.Repo.MarkRead(ctx, notificationID); err != nil {
		return apperr.Transport(err, "failed to mark notification read")
	}
	s.cache().Invalidate(ctx, n.Receiver())
	return nil
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, rcv models.Receiver) error {
	changed, err := s.Repo.MarkAllRead(ctx, rcv)
	if err != nil {
		return apperr.Transport(err, "failed to mark notifications read")
	}
	if changed > 0 {
		s.cache().Invalidate(ctx, rcv)
	}
	s.logger().Debug("Marked notifications read",
		zap.Int64("receiverId", rcv.ID),
		zap.String("receiverType", string(rcv.Type)),
		zap.Int64("changed", changed),
	)
	return nil
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, rcv models.Receiver) (int64, error) {
	if n, ok := s.cache().Get(ctx, rcv); ok {
		return n, nil
	}
	gen := s.cache().Generation(ctx, rcv)
	n, err := s.Repo.CountUnread(ctx, rcv)
	if err != nil {
		return 0, apperr.Transport(err, "failed to count unread notifications")
	}
	s.cache().Set(ctx, rcv, n, gen)
	return n, nil
}
