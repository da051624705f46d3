package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"smarthub/database"
	"smarthub/models"
)

type userStore struct{ s *Store }

func (r *userStore) Create(ctx context.Context, u *models.User) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	for _, existing := range r.s.users {
		if existing.Email != "" && existing.Email == u.Email {
			return fmt.Errorf("user %s: %w", u.Email, database.ErrDuplicate)
		}
	}
	if u.ID == 0 {
		u.ID = r.s.next("users")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.s.users[u.ID] = *u
	id := u.ID
	record(j, func() { delete(r.s.users, id) })
	return nil
}

func (r *userStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	defer r.s.read()()
	u, ok := r.s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (r *userStore) GetAll(context.Context) ([]models.User, error) {
	defer r.s.read()()
	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, k int) bool { return users[i].ID < users[k].ID })
	return users, nil
}
