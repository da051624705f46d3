package bookingRepo

import (
	"context"
	"time"

	"smarthub/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create assigns an id when b.ID is zero and inserts the booking.
	Create(ctx context.Context, b *models.Booking) error
	// GetByID returns database.ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	// ListByProvider returns the provider's bookings, newest first.
	ListByProvider(ctx context.Context, providerID int64) ([]models.Booking, error)
	// ListAll returns every booking, newest first.
	ListAll(ctx context.Context) ([]models.Booking, error)
	// CompareAndSetStatus moves the booking from one status to another. It returns
	// database.ErrStatusConflict if the stored status is no longer from, and
	// database.ErrNotFound if the booking does not exist.
	CompareAndSetStatus(ctx context.Context, id int64, from, to models.BookingStatus, at time.Time) (*models.Booking, error)
}
