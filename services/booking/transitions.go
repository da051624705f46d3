package booking

import (
	"time"

	"smarthub/models"
)

// Policy holds the configurable parts of the booking lifecycle.
type Policy struct {
	// AllowCancelAccepted lets the owning user cancel a booking the provider already accepted.
	AllowCancelAccepted bool
	// Location interprets bookingDate/bookingTime. Nil means UTC.
	Location *time.Location
	// ReminderLead is how long before the start a reminder fires.
	ReminderLead time.Duration
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

type transitionKey struct {
	from   models.BookingStatus
	action models.BookingAction
}

type transitionRule struct {
	to models.BookingStatus
	// notify goes to the counter-party of the actor.
	notify   models.NotificationType
	receiver models.ReceiverType
	message  func(b models.Booking) string
	// enabled gates a policy-dependent edge; nil means always allowed.
	enabled func(Policy) bool
}

var transitions = map[transitionKey]transitionRule{
	{models.StatusPending, models.ActionAccept}: {
		to:       models.StatusAccepted,
		notify:   models.NotificationBookingAccepted,
		receiver: models.ReceiverUser,
		message:  acceptedMessage,
	},
	{models.StatusPending, models.ActionReject}: {
		to:       models.StatusRejected,
		notify:   models.NotificationBookingRejected,
		receiver: models.ReceiverUser,
		message:  rejectedMessage,
	},
	{models.StatusPending, models.ActionCancel}: {
		to:       models.StatusCancelled,
		notify:   models.NotificationBookingCancelled,
		receiver: models.ReceiverProvider,
		message:  cancelledMessage,
	},
	{models.StatusAccepted, models.ActionCancel}: {
		to:       models.StatusCancelled,
		notify:   models.NotificationBookingCancelled,
		receiver: models.ReceiverProvider,
		message:  cancelledMessage,
		enabled:  func(p Policy) bool { return p.AllowCancelAccepted },
	},
	{models.StatusAccepted, models.ActionComplete}: {
		to:       models.StatusCompleted,
		notify:   models.NotificationBookingCompleted,
		receiver: models.ReceiverUser,
		message:  completedMessage,
	},
}

// next looks up the edge leaving from on action under policy p.
func (p Policy) next(from models.BookingStatus, action models.BookingAction) (transitionRule, bool) {
	rule, ok := transitions[transitionKey{from: from, action: action}]
	if !ok {
		return transitionRule{}, false
	}
	if rule.enabled != nil && !rule.enabled(p) {
		return transitionRule{}, false
	}
	return rule, true
}

func validAction(a models.BookingAction) bool {
	switch a {
	case models.ActionAccept, models.ActionReject, models.ActionCancel, models.ActionComplete:
		return true
	}
	return false
}

// receiverFor returns the inbox of the given side of b.
func receiverFor(b models.Booking, t models.ReceiverType) models.Receiver {
	if t == models.ReceiverProvider {
		return models.Receiver{ID: b.ProviderID, Type: models.ReceiverProvider}
	}
	return models.Receiver{ID: b.UserID, Type: models.ReceiverUser}
}
