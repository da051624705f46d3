package models

// PushPayload is the body of a notification push task.
type PushPayload struct {
	NotificationID   int64            `json:"notificationId"`
	ReceiverID       int64            `json:"receiverId"`
	ReceiverType     ReceiverType     `json:"receiverType"`
	Type             NotificationType `json:"type"`
	Message          string           `json:"message"`
	RelatedBookingID *int64           `json:"relatedBookingId,omitempty"`
}

// ReminderPayload is the body of a booking reminder task.
type ReminderPayload struct {
	BookingID int64 `json:"bookingId"`
}
