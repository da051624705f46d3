// Package review records user ratings of completed bookings.
package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"smarthub/database"
	bookingRepo "smarthub/database/repository/booking"
	reviewRepo "smarthub/database/repository/review"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap"
)

type ReviewService interface {
	// Create rates a COMPLETED booking. Each booking can be reviewed once, by its user.
	Create(ctx context.Context, actor models.Actor, req models.ReviewRequest) (*models.Review, error)
	ListForProvider(ctx context.Context, providerID int64) ([]models.Review, error)
}

type DefaultReviewService struct {
	Reviews  reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultReviewService) Create(ctx context.Context, actor models.Actor, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	b, err := s.Bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("booking %d not found", req.BookingID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load booking")
	}
	if !actor.Is(models.RoleUser, b.UserID) {
		return nil, apperr.Forbidden("only the booking user may review booking %d", b.ID)
	}
	if b.Status != models.StatusCompleted {
		return nil, apperr.Validation("booking %d is %s; only completed bookings can be reviewed", b.ID, b.Status)
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	rv := &models.Review{
		BookingID:  b.ID,
		UserID:     b.UserID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  now,
	}
	err = s.Reviews.Create(ctx, rv)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, apperr.Validation("booking %d has already been reviewed", b.ID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to store review")
	}

	if s.Logger != nil {
		s.Logger.Info("Review created",
			zap.Int64("reviewId", rv.ID),
			zap.Int64("bookingId", rv.BookingID),
			zap.Int("rating", rv.Rating),
		)
	}
	return rv, nil
}

func (s *DefaultReviewService) ListForProvider(ctx context.Context, providerID int64) ([]models.Review, error) {
	reviews, err := s.Reviews.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load reviews")
	}
	return reviews, nil
}
