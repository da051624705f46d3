package booking

import (
	"context"
	"time"

	"smarthub/database"
	bookingRepo "smarthub/database/repository/booking"
	providerRepo "smarthub/database/repository/provider"
	userRepo "smarthub/database/repository/user"
	"smarthub/models"
	"smarthub/services/notification"

	"go.uber.org/zap"
)

// BookingService owns the authoritative status of every booking.
type BookingService interface {
	// CreateBooking stores a PENDING booking and notifies the provider in one transaction.
	CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error)
	// Transition applies action to the booking and notifies the counter-party in one transaction.
	Transition(ctx context.Context, bookingID int64, actor models.Actor, action models.BookingAction) (*models.Booking, error)
	// Get returns a booking visible to actor.
	Get(ctx context.Context, actor models.Actor, bookingID int64) (*models.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Booking, error)
	ListForProvider(ctx context.Context, providerID int64) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	// SendReminder notifies both parties if the booking is still ACCEPTED.
	SendReminder(ctx context.Context, bookingID int64) error
}

// ReminderScheduler queues a reminder for a booking at a given time.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, bookingID int64, at time.Time) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingRepository
	Users         userRepo.UserRepository
	Providers     providerRepo.ProviderRepository
	Notifications notification.NotificationService
	Tx            database.TxRunner
	// Reminders is optional.
	Reminders ReminderScheduler
	Policy    Policy
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}
