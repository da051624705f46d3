// Package seed loads demo users and providers into an empty store.
package seed

import (
	"context"
	"fmt"

	"smarthub/database/repository"
	"smarthub/models"

	"go.uber.org/zap"
)

var demoUsers = []models.User{
	{FullName: "Priya Sharma", Email: "priya@example.com", Mobile: "9800000001"},
	{FullName: "Arjun Mehta", Email: "arjun@example.com", Mobile: "9800000002"},
}

var demoProviders = []models.Provider{
	{FullName: "Asha Patil", Email: "asha@example.com", Mobile: "9900000001", ServiceType: "Electrician", Experience: 8, Price: 500, Availability: "Mon-Sat 9-18", Location: "Pune"},
	{FullName: "Ravi Kumar", Email: "ravi@example.com", Mobile: "9900000002", ServiceType: "Plumber", Experience: 5, Price: 400, Availability: "Daily 8-20", Location: "Pune"},
	{FullName: "Meera Joshi", Email: "meera@example.com", Mobile: "9900000003", ServiceType: "Electrician", Experience: 3, Price: 350, Availability: "Weekends", Location: "Mumbai"},
	{FullName: "Sameer Khan", Email: "sameer@example.com", Mobile: "9900000004", ServiceType: "Carpenter", Experience: 12, Price: 650, Availability: "Mon-Fri 10-17", Location: "Nagpur"},
}

// Demo inserts the demo directory unless users or providers already exist.
func Demo(ctx context.Context, set *repository.Set, logger *zap.Logger) error {
	users, err := set.Users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	providers, err := set.Providers.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list providers: %w", err)
	}
	if len(users) > 0 || len(providers) > 0 {
		logger.Info("Store already populated, skipping demo data")
		return nil
	}

	for _, u := range demoUsers {
		if err := set.Users.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed: user %s: %w", u.Email, err)
		}
	}
	for _, p := range demoProviders {
		if err := set.Providers.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed: provider %s: %w", p.Email, err)
		}
	}
	logger.Info("Demo data loaded",
		zap.Int("users", len(demoUsers)),
		zap.Int("providers", len(demoProviders)),
	)
	return nil
}
