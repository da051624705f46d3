package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"smarthub/database"
	"smarthub/models"
)

type reviewStore struct{ s *Store }

func (r *reviewStore) Create(ctx context.Context, rv *models.Review) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	for _, existing := range r.s.reviews {
		if existing.BookingID == rv.BookingID {
			return fmt.Errorf("review for booking %d: %w", rv.BookingID, database.ErrDuplicate)
		}
	}
	if rv.ID == 0 {
		rv.ID = r.s.next("reviews")
	}
	r.s.reviews[rv.ID] = *rv
	id := rv.ID
	record(j, func() { delete(r.s.reviews, id) })
	return nil
}

func (r *reviewStore) GetByBooking(_ context.Context, bookingID int64) (*models.Review, error) {
	defer r.s.read()()
	for _, rv := range r.s.reviews {
		if rv.BookingID == bookingID {
			return &rv, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *reviewStore) ListByProvider(_ context.Context, providerID int64) ([]models.Review, error) {
	defer r.s.read()()
	reviews := []models.Review{}
	for _, rv := range r.s.reviews {
		if rv.ProviderID == providerID {
			reviews = append(reviews, rv)
		}
	}
	sortNewestFirst(reviews, func(rv models.Review) (time.Time, int64) { return rv.CreatedAt, rv.ID })
	return reviews, nil
}

type complaintStore struct{ s *Store }

func (r *complaintStore) Create(ctx context.Context, c *models.Complaint) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	if c.ID == 0 {
		c.ID = r.s.next("complaints")
	}
	r.s.complaints[c.ID] = *c
	id := c.ID
	record(j, func() { delete(r.s.complaints, id) })
	return nil
}

func (r *complaintStore) ListAll(context.Context) ([]models.Complaint, error) {
	defer r.s.read()()
	complaints := make([]models.Complaint, 0, len(r.s.complaints))
	for _, c := range r.s.complaints {
		complaints = append(complaints, c)
	}
	sortNewestFirst(complaints, func(c models.Complaint) (time.Time, int64) { return c.CreatedAt, c.ID })
	return complaints, nil
}

func (r *complaintStore) Resolve(ctx context.Context, id int64, response string, at time.Time) (*models.Complaint, error) {
	j, unlock := r.s.write(ctx)
	defer unlock()

	prev, ok := r.s.complaints[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	c := prev
	c.Response = response
	c.Status = models.ComplaintResolved
	c.UpdatedAt = at
	r.s.complaints[id] = c
	record(j, func() { r.s.complaints[id] = prev })
	return &c, nil
}

func sortNewestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	sort.Slice(items, func(i, k int) bool {
		ti, idi := key(items[i])
		tk, idk := key(items[k])
		if !ti.Equal(tk) {
			return ti.After(tk)
		}
		return idi > idk
	})
}
