package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"smarthub/database"
	providerRepo "smarthub/database/repository/provider"
	"smarthub/models"
)

type providerStore struct{ s *Store }

func (r *providerStore) Create(ctx context.Context, p *models.Provider) error {
	j, unlock := r.s.write(ctx)
	defer unlock()

	for _, existing := range r.s.providers {
		if existing.Email != "" && existing.Email == p.Email {
			return fmt.Errorf("provider %s: %w", p.Email, database.ErrDuplicate)
		}
	}
	if p.ID == 0 {
		p.ID = r.s.next("providers")
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.s.providers[p.ID] = *p
	id := p.ID
	record(j, func() { delete(r.s.providers, id) })
	return nil
}

func (r *providerStore) GetByID(_ context.Context, id int64) (*models.Provider, error) {
	defer r.s.read()()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (r *providerStore) GetAll(ctx context.Context) ([]models.Provider, error) {
	return r.Search(ctx, providerRepo.ProviderSearchCriteria{})
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (r *providerStore) Search(_ context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	defer r.s.read()()
	providers := []models.Provider{}
	for _, p := range r.s.providers {
		if criteria.ServiceType != "" && !containsFold(p.ServiceType, criteria.ServiceType) {
			continue
		}
		if criteria.Location != "" && !containsFold(p.Location, criteria.Location) {
			continue
		}
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, k int) bool { return providers[i].ID < providers[k].ID })
	return providers, nil
}

func (r *providerStore) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate, at time.Time) (*models.Provider, error) {
	j, unlock := r.s.write(ctx)
	defer unlock()

	prev, ok := r.s.providers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	for _, other := range r.s.providers {
		if other.ID != id && upd.Email != "" && other.Email == upd.Email {
			return nil, fmt.Errorf("provider email %s: %w", upd.Email, database.ErrDuplicate)
		}
	}

	p := prev
	p.FullName = upd.FullName
	p.Email = upd.Email
	p.Mobile = upd.Mobile
	p.ServiceType = upd.ServiceType
	p.Experience = upd.Experience
	p.Price = upd.Price
	p.Availability = upd.Availability
	p.Location = upd.Location
	p.UpdatedAt = at
	r.s.providers[id] = p
	record(j, func() { r.s.providers[id] = prev })
	return &p, nil
}
