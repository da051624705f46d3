// Package payment charges bookings through an external payment processor.
// Card data never reaches this service; clients send a processor token.
package payment

import (
	"context"
	"errors"
	"strings"

	"smarthub/database"
	bookingRepo "smarthub/database/repository/booking"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap"
)

// Charger is the narrow processor boundary: charge amount against a token.
type Charger interface {
	Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error)
}

type PaymentService interface {
	Charge(ctx context.Context, actor models.Actor, req models.ChargeRequest) (*models.ChargeResult, error)
}

type DefaultPaymentService struct {
	Bookings bookingRepo.BookingRepository
	Charger  Charger
	// Currency applies when the request omits one.
	Currency string
	Logger   *zap.Logger
}

func (s *DefaultPaymentService) Charge(ctx context.Context, actor models.Actor, req models.ChargeRequest) (*models.ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if strings.TrimSpace(req.PaymentToken) == "" {
		return nil, apperr.Validation("paymentToken is required")
	}
	req.Currency = strings.ToLower(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = strings.ToLower(s.Currency)
	}
	if req.Currency == "" {
		return nil, apperr.Validation("currency is required")
	}

	b, err := s.Bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("booking %d not found", req.BookingID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load booking")
	}
	if !actor.Is(models.RoleUser, b.UserID) {
		return nil, apperr.NotFound("booking %d not found", req.BookingID)
	}
	if b.Status == models.StatusRejected || b.Status == models.StatusCancelled {
		return nil, apperr.Validation("booking %d is %s and cannot be paid", b.ID, b.Status)
	}

	if s.Charger == nil {
		return nil, apperr.Transport(errors.New("no payment processor configured"), "payments are unavailable")
	}
	res, err := s.Charger.Charge(ctx, req)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("Charge failed", zap.Int64("bookingId", b.ID), zap.Error(err))
		}
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, apperr.Transport(err, "payment processor error")
	}

	if s.Logger != nil {
		s.Logger.Info("Booking charged",
			zap.Int64("bookingId", b.ID),
			zap.String("chargeId", res.ChargeID),
			zap.String("status", res.Status),
		)
	}
	return res, nil
}
