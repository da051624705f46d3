package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"smarthub/database"
	providerRepo "smarthub/database/repository/provider"
	userRepo "smarthub/database/repository/user"
	"smarthub/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// MessageSender is the subset of *messaging.Client used for pushes.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Pusher delivers stored notifications to devices through FCM.
type Pusher struct {
	Sender    MessageSender
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
	Logger    *zap.Logger
}

func (p *Pusher) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Push sends one notification. Receivers without a device token and a
// disabled sender are skipped without error.
func (p *Pusher) Push(ctx context.Context, payload models.PushPayload) error {
	if p.Sender == nil {
		p.log().Debug("Push disabled, skipping", zap.Int64("notificationId", payload.NotificationID))
		return nil
	}

	token, err := p.deviceToken(ctx, payload.ReceiverID, payload.ReceiverType)
	if err != nil {
		return err
	}
	if token == "" {
		p.log().Debug("Receiver has no FCM token",
			zap.Int64("receiverId", payload.ReceiverID),
			zap.String("receiverType", string(payload.ReceiverType)),
		)
		return nil
	}

	data := map[string]string{
		"notificationId": strconv.FormatInt(payload.NotificationID, 10),
		"type":           string(payload.Type),
		"role":           string(payload.ReceiverType),
	}
	if payload.RelatedBookingID != nil {
		data["bookingId"] = strconv.FormatInt(*payload.RelatedBookingID, 10)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: titleFor(payload.Type),
			Body:  payload.Message,
		},
		Data: data,
	}

	id, err := p.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	p.log().Debug("Push sent", zap.Int64("notificationId", payload.NotificationID), zap.String("messageId", id))
	return nil
}

func (p *Pusher) deviceToken(ctx context.Context, id int64, typ models.ReceiverType) (string, error) {
	switch typ {
	case models.ReceiverUser:
		u, err := p.Users.GetByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("could not load user %d: %w", id, err)
		}
		return u.FCMToken, nil
	case models.ReceiverProvider:
		pr, err := p.Providers.GetByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("could not load provider %d: %w", id, err)
		}
		return pr.FCMToken, nil
	}
	return "", nil
}

func titleFor(t models.NotificationType) string {
	switch t {
	case models.NotificationBookingRequest:
		return "New booking request"
	case models.NotificationBookingAccepted:
		return "Booking accepted"
	case models.NotificationBookingRejected:
		return "Booking rejected"
	case models.NotificationBookingCancelled:
		return "Booking cancelled"
	case models.NotificationBookingCompleted:
		return "Booking completed"
	case models.NotificationBookingReminder:
		return "Upcoming booking"
	}
	return "SmartHub"
}
