package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"smarthub/models"
)

func TestBookingJSONRoundTrip(t *testing.T) {
	in := models.Booking{
		ID:          42,
		UserID:      7,
		ProviderID:  3,
		ServiceType: "Plumber",
		BookingDate: "2025-03-10",
		BookingTime: "10:00:00",
		Status:      models.StatusPending,
		CreatedAt:   time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, field := range []string{`"bookingId":42`, `"bookingTime":"10:00:00"`, `"bookingDate":"2025-03-10"`, `"status":"PENDING"`} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("encoded booking %s missing %s", raw, field)
		}
	}

	var out models.Booking
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) || !out.UpdatedAt.Equal(in.UpdatedAt) {
		t.Errorf("timestamps changed: got %v/%v", out.CreatedAt, out.UpdatedAt)
	}
	out.CreatedAt, out.UpdatedAt = in.CreatedAt, in.UpdatedAt
	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestBookingStartsAt(t *testing.T) {
	b := models.Booking{BookingDate: "2025-03-10", BookingTime: "10:00:00"}
	loc := time.FixedZone("IST", 5*3600+1800)

	got, err := b.StartsAt(loc)
	if err != nil {
		t.Fatalf("StartsAt: %v", err)
	}
	want := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartsAt = %v, want %v", got, want)
	}
}

func TestStatusHelpers(t *testing.T) {
	terminal := map[models.BookingStatus]bool{
		models.StatusPending:   false,
		models.StatusAccepted:  false,
		models.StatusRejected:  true,
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	}
	for s, want := range terminal {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}

	if a, ok := models.ActionForStatus(models.StatusAccepted); !ok || a != models.ActionAccept {
		t.Errorf("ActionForStatus(ACCEPTED) = %v, %v", a, ok)
	}
	if _, ok := models.ActionForStatus(models.StatusPending); ok {
		t.Error("PENDING is not reachable by any action")
	}
}
