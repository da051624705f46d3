package userRepo

import (
	"context"

	"smarthub/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create assigns an id when u.ID is zero and inserts the user.
	Create(ctx context.Context, u *models.User) error
	// GetByID returns database.ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetAll returns every user ordered by id.
	GetAll(ctx context.Context) ([]models.User, error)
}
