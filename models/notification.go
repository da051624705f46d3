package models

import "time"

type ReceiverType string

const (
	ReceiverUser     ReceiverType = "USER"
	ReceiverProvider ReceiverType = "PROVIDER"
)

func (t ReceiverType) Valid() bool {
	return t == ReceiverUser || t == ReceiverProvider
}

type NotificationType string

const (
	NotificationBookingRequest   NotificationType = "BOOKING_REQUEST"
	NotificationBookingAccepted  NotificationType = "BOOKING_ACCEPTED"
	NotificationBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotificationBookingReminder  NotificationType = "BOOKING_REMINDER"
)

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "UNREAD"
	NotificationRead   NotificationStatus = "READ"
)

// Receiver addresses an inbox. User and provider ids come from separate sequences.
type Receiver struct {
	ID   int64
	Type ReceiverType
}

type Notification struct {
	ID               int64              `bson:"notificationId" json:"notificationId"`
	ReceiverID       int64              `bson:"receiverId" json:"receiverId"`
	ReceiverType     ReceiverType       `bson:"receiverType" json:"receiverType"`
	Message          string             `bson:"message" json:"message"`
	Type             NotificationType   `bson:"type" json:"type"`
	Status           NotificationStatus `bson:"status" json:"status"`
	RelatedBookingID *int64             `bson:"relatedBookingId,omitempty" json:"relatedBookingId,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

func (n Notification) Receiver() Receiver {
	return Receiver{ID: n.ReceiverID, Type: n.ReceiverType}
}

// UnreadCount is the body of GET /api/notifications/:id/unread-count.
type UnreadCount struct {
	ReceiverID   int64        `json:"receiverId"`
	ReceiverType ReceiverType `json:"receiverType"`
	Unread       int64        `json:"unread"`
}
