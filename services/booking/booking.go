package booking

import (
	"context"
	"errors"
	"strings"

	"smarthub/database"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error) {
	if !actor.Is(models.RoleUser, req.UserID) {
		return nil, apperr.Forbidden("bookings can only be requested by the booking user")
	}
	if req.ProviderID <= 0 {
		return nil, apperr.Validation("providerId is required")
	}
	date, clock, _, err := s.schedule(req.BookingDate, req.BookingTime)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.GetByID(ctx, req.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("user %d not found", req.UserID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load user")
	}
	provider, err := s.Providers.GetByID(ctx, req.ProviderID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("provider %d not found", req.ProviderID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load provider")
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = provider.ServiceType
	}

	now := s.now()
	b := &models.Booking{
		UserID:      user.ID,
		ProviderID:  provider.ID,
		ServiceType: serviceType,
		BookingDate: date,
		BookingTime: clock,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var n *models.Notification
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Bookings.Create(ctx, b); err != nil {
			return apperr.Transport(err, "failed to store booking")
		}
		related := b.ID
		n = &models.Notification{
			ReceiverID:       provider.ID,
			ReceiverType:     models.ReceiverProvider,
			Type:             models.NotificationBookingRequest,
			Message:          requestMessage(user.FullName, *b),
			RelatedBookingID: &related,
		}
		return s.Notifications.Emit(ctx, n)
	})
	if err != nil {
		return nil, asTransport(err, "booking transaction failed")
	}

	s.Notifications.Published(ctx, *n)
	s.logger().Info("Booking created",
		zap.Int64("bookingId", b.ID),
		zap.Int64("userId", b.UserID),
		zap.Int64("providerId", b.ProviderID),
	)
	return b, nil
}

func (s *DefaultBookingService) Transition(ctx context.Context, bookingID int64, actor models.Actor, action models.BookingAction) (*models.Booking, error) {
	if !validAction(action) {
		return nil, apperr.Validation("unknown action %q", action)
	}
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(*b, actor, action); err != nil {
		return nil, err
	}
	rule, ok := s.Policy.next(b.Status, action)
	if !ok {
		return nil, apperr.InvalidTransition("cannot %s booking %d: status is %s", strings.ToLower(string(action)), b.ID, b.Status)
	}

	var (
		updated *models.Booking
		n       *models.Notification
	)
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.Bookings.CompareAndSetStatus(ctx, b.ID, b.Status, rule.to, s.now())
		switch {
		case database.IsStatusConflict(err):
			return apperr.InvalidTransition("cannot %s booking %d: status changed concurrently", strings.ToLower(string(action)), b.ID)
		case errors.Is(err, database.ErrNotFound):
			return apperr.NotFound("booking %d not found", b.ID)
		case err != nil:
			return apperr.Transport(err, "failed to update booking")
		}
		updated = u

		rcv := receiverFor(*u, rule.receiver)
		related := u.ID
		n = &models.Notification{
			ReceiverID:       rcv.ID,
			ReceiverType:     rcv.Type,
			Type:             rule.notify,
			Message:          rule.message(*u),
			RelatedBookingID: &related,
		}
		return s.Notifications.Emit(ctx, n)
	})
	if err != nil {
		return nil, asTransport(err, "booking transaction failed")
	}

	s.Notifications.Published(ctx, *n)
	if action == models.ActionAccept {
		s.scheduleReminder(ctx, *updated)
	}
	s.logger().Info("Booking status changed",
		zap.Int64("bookingId", updated.ID),
		zap.String("action", string(action)),
		zap.String("from", string(b.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("actorRole", string(actor.Role)),
		zap.Int64("actorId", actor.ID),
	)
	return updated, nil
}

// authorize checks that actor plays the role the action requires on b.
func authorize(b models.Booking, actor models.Actor, action models.BookingAction) error {
	switch action {
	case models.ActionAccept, models.ActionReject:
		if actor.Is(models.RoleProvider, b.ProviderID) {
			return nil
		}
		return apperr.Forbidden("only the addressed provider may %s booking %d", strings.ToLower(string(action)), b.ID)
	case models.ActionCancel:
		if actor.Is(models.RoleUser, b.UserID) {
			return nil
		}
		return apperr.Forbidden("only the booking user may cancel booking %d", b.ID)
	case models.ActionComplete:
		if actor.Is(models.RoleProvider, b.ProviderID) || actor.Role == models.RoleAdmin {
			return nil
		}
		return apperr.Forbidden("only the provider or an administrator may complete booking %d", b.ID)
	}
	return apperr.Validation("unknown action %q", action)
}

func (s *DefaultBookingService) load(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("booking %d not found", id)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load booking")
	}
	return b, nil
}

// Get hides bookings the actor is not party to behind NotFound.
func (s *DefaultBookingService) Get(ctx context.Context, actor models.Actor, bookingID int64) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleAdmin || actor.Is(models.RoleUser, b.UserID) || actor.Is(models.RoleProvider, b.ProviderID) {
		return b, nil
	}
	return nil, apperr.NotFound("booking %d not found", bookingID)
}

func (s *DefaultBookingService) ListForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load bookings")
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID int64) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load bookings")
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListAll(ctx)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load bookings")
	}
	return bookings, nil
}

// asTransport classifies errors that escaped without a kind, such as a failed commit.
func asTransport(err error, msg string) error {
	if apperr.KindOf(err) == apperr.KindInternal {
		return apperr.Transport(err, "%s", msg)
	}
	return err
}
