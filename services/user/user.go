package user

import (
	"context"
	"errors"

	"smarthub/database"
	"smarthub/models"
	"smarthub/services/apperr"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load user")
	}
	return u, nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load users")
	}
	return users, nil
}
