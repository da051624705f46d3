// Package tasks defines the asynq task types for push delivery and booking reminders.
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"smarthub/models"

	"github.com/hibiken/asynq"
)

const (
	TypeNotificationPush = "notification:push"
	TypeBookingReminder  = "booking:reminder"
)

// NewPushTask builds the push task for n. The task id makes re-enqueueing the same notification a no-op.
func NewPushTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.PushPayload{
		NotificationID:   n.ID,
		ReceiverID:       n.ReceiverID,
		ReceiverType:     n.ReceiverType,
		Type:             n.Type,
		Message:          n.Message,
		RelatedBookingID: n.RelatedBookingID,
	})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.TaskID(fmt.Sprintf("push:%d", n.ID)),
		asynq.MaxRetry(5),
		asynq.Retention(24 * time.Hour),
	}
	return asynq.NewTask(TypeNotificationPush, b), opts, nil
}

// NewReminderTask builds the reminder task for a booking, processed at fireAt.
func NewReminderTask(bookingID int64, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.ReminderPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%d", bookingID)),
		asynq.MaxRetry(3),
	}
	return asynq.NewTask(TypeBookingReminder, b), opts, nil
}
