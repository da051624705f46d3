package provider

import (
	"context"
	"time"

	providerRepo "smarthub/database/repository/provider"
	"smarthub/models"

	"go.uber.org/zap"
)

// ProviderService is the read-mostly provider directory.
type ProviderService interface {
	// Search matches serviceType and location as case-insensitive substrings.
	// Empty arguments match every provider.
	Search(ctx context.Context, serviceType, location string) ([]models.Provider, error)
	GetProfile(ctx context.Context, providerID int64) (*models.Provider, error)
	// UpdateProfile lets a provider edit its own profile.
	UpdateProfile(ctx context.Context, actor models.Actor, providerID int64, upd models.ProfileUpdate) (*models.Provider, error)
	GetAllProviders(ctx context.Context) ([]models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo   providerRepo.ProviderRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func NewDefaultProviderService(repo providerRepo.ProviderRepository, logger *zap.Logger) *DefaultProviderService {
	return &DefaultProviderService{Repo: repo, Logger: logger}
}

func (s *DefaultProviderService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultProviderService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}
