package booking

import (
	"fmt"

	"smarthub/models"
)

func slot(b models.Booking) string {
	return fmt.Sprintf("%s on %s at %s", b.ServiceType, b.BookingDate, b.BookingTime)
}

func requestMessage(customer string, b models.Booking) string {
	return fmt.Sprintf("New booking request #%d from %s for %s", b.ID, customer, slot(b))
}

func acceptedMessage(b models.Booking) string {
	return fmt.Sprintf("Your booking #%d for %s has been accepted", b.ID, slot(b))
}

func rejectedMessage(b models.Booking) string {
	return fmt.Sprintf("Your booking #%d for %s has been rejected", b.ID, slot(b))
}

func cancelledMessage(b models.Booking) string {
	return fmt.Sprintf("Booking #%d for %s was cancelled by the customer", b.ID, slot(b))
}

func completedMessage(b models.Booking) string {
	return fmt.Sprintf("Your booking #%d for %s has been marked completed", b.ID, slot(b))
}

func reminderMessage(b models.Booking) string {
	return fmt.Sprintf("Reminder: booking #%d for %s is coming up", b.ID, slot(b))
}
