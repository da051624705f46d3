package memory

import (
	"context"
	"sort"

	"smarthub/database"
	"smarthub/models"
)

type notificationStore struct{ s *Store }

func (r *notificationStore) Create(ctx context.Context, n *models.Notification) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	if n.ID == 0 {
		n.ID = r.s.next("notifications")
	}
	r.s.notifications[n.ID] = *n
	id := n.ID
	record(j, func() { delete(r.s.notifications, id) })
	return nil
}

func (r *notificationStore) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	defer r.s.read()()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &n, nil
}

func (r *notificationStore) ListByReceiver(_ context.Context, rcv models.Receiver) ([]models.Notification, error) {
	defer r.s.read()()
	list := []models.Notification{}
	for _, n := range r.s.notifications {
		if n.Receiver() == rcv {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, k int) bool {
		if !list[i].CreatedAt.Equal(list[k].CreatedAt) {
			return list[i].CreatedAt.After(list[k].CreatedAt)
		}
		return list[i].ID > list[k].ID
	})
	return list, nil
}

func (r *notificationStore) MarkRead(ctx context.Context, id int64) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	prev, ok := r.s.notifications[id]
	if !ok {
		return database.ErrNotFound
	}
	n := prev
	n.Status = models.NotificationRead
	r.s.notifications[id] = n
	record(j, func() { r.s.notifications[id] = prev })
	return nil
}

func (r *notificationStore) MarkAllRead(ctx context.Context, rcv models.Receiver) (int64, error) {
	j, unlock := r.s.write(ctx)
	defer unlock()

	var changed int64
	for id, prev := range r.s.notifications {
		if prev.Receiver() != rcv || prev.Status != models.NotificationUnread {
			continue
		}
		n := prev
		n.Status = models.NotificationRead
		r.s.notifications[id] = n
		id, prev := id, prev
		record(j, func() { r.s.notifications[id] = prev })
		changed++
	}
	return changed, nil
}

func (r *notificationStore) CountUnread(_ context.Context, rcv models.Receiver) (int64, error) {
	defer r.s.read()()
	var count int64
	for _, n := range r.s.notifications {
		if n.Receiver() == rcv && n.Status == models.NotificationUnread {
			count++
		}
	}
	return count, nil
}
