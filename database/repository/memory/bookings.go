package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"smarthub/database"
	"smarthub/models"
)

type bookingStore struct{ s *Store }

func (r *bookingStore) Create(ctx context.Context, b *models.Booking) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	if b.ID == 0 {
		b.ID = r.s.next("bookings")
	}
	if _, exists := r.s.bookings[b.ID]; exists {
		return fmt.Errorf("booking %d: %w", b.ID, database.ErrDuplicate)
	}
	r.s.bookings[b.ID] = *b
	id := b.ID
	record(j, func() { delete(r.s.bookings, id) })
	return nil
}

func (r *bookingStore) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	defer r.s.read()()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (r *bookingStore) ListByUser(_ context.Context, userID int64) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *bookingStore) ListByProvider(_ context.Context, providerID int64) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.ProviderID == providerID }), nil
}

func (r *bookingStore) ListAll(context.Context) ([]models.Booking, error) {
	return r.filter(func(models.Booking) bool { return true }), nil
}

func (r *bookingStore) filter(keep func(models.Booking) bool) []models.Booking {
	defer r.s.read()()
	bookings := []models.Booking{}
	for _, b := range r.s.bookings {
		if keep(b) {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, k int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[k].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[k].CreatedAt)
		}
		return bookings[i].ID > bookings[k].ID
	})
	return bookings
}

func (r *bookingStore) CompareAndSetStatus(ctx context.Context, id int64, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	j, unlock := r.s.write(ctx)
	defer unlock()

	prev, ok := r.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if prev.Status != from {
		return nil, database.ErrStatusConflict
	}
	b := prev
	b.Status = to
	b.UpdatedAt = at
	r.s.bookings[id] = b
	record(j, func() { r.s.bookings[id] = prev })
	return &b, nil
}
