package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Booking      *BookingHandler
	Notification *NotificationHandler
	Provider     *ProviderHandler
	Feedback     *FeedbackHandler
	Admin        *AdminHandler
}
