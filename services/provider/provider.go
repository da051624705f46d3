package provider

import (
	"context"
	"errors"
	"strings"

	"smarthub/database"
	providerRepo "smarthub/database/repository/provider"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap"
)

func (s *DefaultProviderService) Search(ctx context.Context, serviceType, location string) ([]models.Provider, error) {
	criteria := providerRepo.ProviderSearchCriteria{
		ServiceType: strings.TrimSpace(serviceType),
		Location:    strings.TrimSpace(location),
	}
	providers, err := s.Repo.Search(ctx, criteria)
	if err != nil {
		return nil, apperr.Transport(err, "failed to search providers")
	}
	s.logger().Debug("Provider search",
		zap.String("serviceType", criteria.ServiceType),
		zap.String("location", criteria.Location),
		zap.Int("results", len(providers)),
	)
	return providers, nil
}

func (s *DefaultProviderService) GetProfile(ctx context.Context, providerID int64) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, providerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("provider %d not found", providerID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to load provider")
	}
	return p, nil
}

func (s *DefaultProviderService) UpdateProfile(ctx context.Context, actor models.Actor, providerID int64, upd models.ProfileUpdate) (*models.Provider, error) {
	if !actor.Is(models.RoleProvider, providerID) {
		return nil, apperr.Forbidden("providers can only edit their own profile")
	}

	upd.FullName = strings.TrimSpace(upd.FullName)
	upd.Email = strings.TrimSpace(upd.Email)
	upd.ServiceType = strings.TrimSpace(upd.ServiceType)
	upd.Location = strings.TrimSpace(upd.Location)
	switch {
	case upd.FullName == "":
		return nil, apperr.Validation("fullName is required")
	case upd.Experience < 0:
		return nil, apperr.Validation("experience cannot be negative")
	case upd.Price < 0:
		return nil, apperr.Validation("price cannot be negative")
	}

	p, err := s.Repo.UpdateProfile(ctx, providerID, upd, s.now())
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("provider %d not found", providerID)
	case errors.Is(err, database.ErrDuplicate):
		return nil, apperr.Validation("email %s is already registered", upd.Email)
	case err != nil:
		return nil, apperr.Transport(err, "failed to update provider")
	}

	s.logger().Info("Provider profile updated", zap.Int64("providerId", providerID))
	return p, nil
}

func (s *DefaultProviderService) GetAllProviders(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load providers")
	}
	return providers, nil
}
