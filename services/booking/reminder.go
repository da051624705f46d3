package booking

import (
	"context"

	"smarthub/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b models.Booking) {
	if s.Reminders == nil {
		return
	}
	start, err := b.StartsAt(s.Policy.location())
	if err != nil {
		s.logger().Warn("Cannot compute booking start", zap.Int64("bookingId", b.ID), zap.Error(err))
		return
	}
	now := s.now()
	if !start.After(now) {
		return
	}
	fireAt := start.Add(-s.Policy.ReminderLead)
	if fireAt.Before(now) {
		fireAt = now
	}
	if err := s.Reminders.ScheduleReminder(ctx, b.ID, fireAt); err != nil {
		s.logger().Warn("Failed to schedule reminder", zap.Int64("bookingId", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) SendReminder(ctx context.Context, bookingID int64) error {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != models.StatusAccepted {
		s.logger().Debug("Skipping reminder", zap.Int64("bookingId", b.ID), zap.String("status", string(b.Status)))
		return nil
	}

	// Both reminders commit together so a retried task never repeats one side.
	related := b.ID
	msg := reminderMessage(*b)
	var sent []models.Notification
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		sent = sent[:0]
		for _, side := range []models.ReceiverType{models.ReceiverUser, models.ReceiverProvider} {
			rcv := receiverFor(*b, side)
			n := &models.Notification{
				ReceiverID:       rcv.ID,
				ReceiverType:     rcv.Type,
				Type:             models.NotificationBookingReminder,
				Message:          msg,
				RelatedBookingID: &related,
			}
			if err := s.Notifications.Emit(ctx, n); err != nil {
				return err
			}
			sent = append(sent, *n)
		}
		return nil
	})
	if err != nil {
		return asTransport(err, "reminder transaction failed")
	}

	for _, n := range sent {
		s.Notifications.Published(ctx, n)
	}
	s.logger().Info("Booking reminder sent", zap.Int64("bookingId", b.ID))
	return nil
}
