package providerRepo

import (
	"context"
	"time"

	"smarthub/models"
)

// ProviderSearchCriteria filters providers by case-insensitive substring. Empty fields match everything.
type ProviderSearchCriteria struct {
	ServiceType string
	Location    string
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// Create assigns an id when p.ID is zero and inserts the provider.
	Create(ctx context.Context, p *models.Provider) error
	// GetByID returns database.ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*models.Provider, error)
	// GetAll returns every provider ordered by id.
	GetAll(ctx context.Context) ([]models.Provider, error)
	// Search returns the providers matching criteria ordered by id.
	Search(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error)
	// UpdateProfile overwrites the editable profile fields.
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate, at time.Time) (*models.Provider, error)
}
