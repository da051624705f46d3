package booking

import (
	"strings"
	"time"

	"smarthub/models"
	"smarthub/services/apperr"
)

// normalizeDate checks a YYYY-MM-DD calendar date.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation("bookingDate is required")
	}
	d, err := time.Parse(models.BookingDateLayout, s)
	if err != nil {
		return "", apperr.Validation("bookingDate %q must be a YYYY-MM-DD date", s)
	}
	return d.Format(models.BookingDateLayout), nil
}

// normalizeTime accepts HH:mm:ss or HH:mm and returns HH:mm:ss.
func normalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation("bookingTime is required")
	}
	for _, layout := range []string{models.BookingTimeLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.BookingTimeLayout), nil
		}
	}
	return "", apperr.Validation("bookingTime %q must be HH:mm:ss", s)
}

// schedule validates the requested slot and returns its normalized parts and start instant.
func (s *DefaultBookingService) schedule(date, clock string) (string, string, time.Time, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return "", "", time.Time{}, err
	}
	c, err := normalizeTime(clock)
	if err != nil {
		return "", "", time.Time{}, err
	}
	start, err := models.Booking{BookingDate: d, BookingTime: c}.StartsAt(s.Policy.location())
	if err != nil {
		return "", "", time.Time{}, apperr.Validation("invalid booking date/time")
	}
	if start.Before(s.now()) {
		return "", "", time.Time{}, apperr.Validation("booking time %s %s is in the past", d, c)
	}
	return d, c, start, nil
}
