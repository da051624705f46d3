package reviewRepo

import (
	"context"

	"smarthub/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create assigns an id when rv.ID is zero. Returns database.ErrDuplicate if the booking already has a review.
	Create(ctx context.Context, rv *models.Review) error
	// GetByBooking returns database.ErrNotFound when the booking has no review.
	GetByBooking(ctx context.Context, bookingID int64) (*models.Review, error)
	// ListByProvider returns the provider's reviews, newest first.
	ListByProvider(ctx context.Context, providerID int64) ([]models.Review, error)
}
