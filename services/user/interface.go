package user

import (
	"context"

	userRepo "smarthub/database/repository/user"
	"smarthub/models"
)

type UserService interface {
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
