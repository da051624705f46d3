package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether no further transition is possible from s.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingAction is a command that moves a booking between states.
type BookingAction string

const (
	ActionAccept   BookingAction = "ACCEPT"
	ActionReject   BookingAction = "REJECT"
	ActionCancel   BookingAction = "CANCEL"
	ActionComplete BookingAction = "COMPLETE"
)

// ActionForStatus maps a requested target status to the action that reaches it.
func ActionForStatus(s BookingStatus) (BookingAction, bool) {
	switch s {
	case StatusAccepted:
		return ActionAccept, true
	case StatusRejected:
		return ActionReject, true
	case StatusCancelled:
		return ActionCancel, true
	case StatusCompleted:
		return ActionComplete, true
	}
	return "", false
}

// Wire formats for BookingDate and BookingTime.
const (
	BookingDateLayout = "2006-01-02"
	BookingTimeLayout = "15:04:05"
)

type Booking struct {
	ID          int64         `bson:"bookingId" json:"bookingId"`
	UserID      int64         `bson:"userId" json:"userId"`
	ProviderID  int64         `bson:"providerId" json:"providerId"`
	ServiceType string        `bson:"serviceType" json:"serviceType"`
	BookingDate string        `bson:"bookingDate" json:"bookingDate"`
	BookingTime string        `bson:"bookingTime" json:"bookingTime"`
	Status      BookingStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// StartsAt combines BookingDate and BookingTime in loc.
func (b Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(BookingDateLayout+" "+BookingTimeLayout, b.BookingDate+" "+b.BookingTime, loc)
}

// CreateBookingRequest is the payload of POST /api/bookings.
type CreateBookingRequest struct {
	UserID      int64  `json:"userId"`
	ProviderID  int64  `json:"providerId"`
	ServiceType string `json:"serviceType"`
	BookingDate string `json:"bookingDate"`
	BookingTime string `json:"bookingTime"`
}

// StatusChangeRequest accepts either {"action": "ACCEPT"} or {"status": "ACCEPTED"}.
type StatusChangeRequest struct {
	Action BookingAction `json:"action"`
	Status BookingStatus `json:"status"`
}
