package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"smarthub/database"
	"smarthub/database/repository"
	"smarthub/database/repository/memory"
	"smarthub/models"
)

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	set := memory.NewSet()
	boom := errors.New("boom")

	err := set.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		b := &models.Booking{UserID: 1, ProviderID: 2, Status: models.StatusPending}
		if err := set.Bookings.Create(ctx, b); err != nil {
			return err
		}
		n := &models.Notification{ReceiverID: 2, ReceiverType: models.ReceiverProvider, Status: models.NotificationUnread}
		if err := set.Notifications.Create(ctx, n); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTransaction err = %v, want boom", err)
	}

	all, _ := set.Bookings.ListAll(ctx)
	if len(all) != 0 {
		t.Errorf("bookings after rollback = %d, want 0", len(all))
	}
	inbox, _ := set.Notifications.ListByReceiver(ctx, models.Receiver{ID: 2, Type: models.ReceiverProvider})
	if len(inbox) != 0 {
		t.Errorf("notifications after rollback = %d, want 0", len(inbox))
	}
}

func TestTransactionRollbackRestoresStatus(t *testing.T) {
	ctx := context.Background()
	set := memory.NewSet()
	b := &models.Booking{UserID: 1, ProviderID: 2, Status: models.StatusPending}
	if err := set.Bookings.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_ = set.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := set.Bookings.CompareAndSetStatus(ctx, b.ID, models.StatusPending, models.StatusAccepted, time.Now()); err != nil {
			return err
		}
		return errors.New("notification insert failed")
	})

	got, err := set.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
}

func TestCompareAndSetStatus(t *testing.T) {
	ctx := context.Background()
	set := memory.NewSet()
	b := &models.Booking{UserID: 1, ProviderID: 2, Status: models.StatusPending}
	_ = set.Bookings.Create(ctx, b)

	if _, err := set.Bookings.CompareAndSetStatus(ctx, b.ID, models.StatusPending, models.StatusAccepted, time.Now()); err != nil {
		t.Fatalf("first CAS: %v", err)
	}
	if _, err := set.Bookings.CompareAndSetStatus(ctx, b.ID, models.StatusPending, models.StatusRejected, time.Now()); !errors.Is(err, database.ErrStatusConflict) {
		t.Errorf("second CAS err = %v, want ErrStatusConflict", err)
	}
	if _, err := set.Bookings.CompareAndSetStatus(ctx, 999, models.StatusPending, models.StatusAccepted, time.Now()); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("missing booking err = %v, want ErrNotFound", err)
	}
}

func TestProviderSearch(t *testing.T) {
	ctx := context.Background()
	set := memory.NewSet()
	seed(t, set.Providers,
		models.Provider{FullName: "A", Email: "a@x", ServiceType: "Electrician", Location: "Pune"},
		models.Provider{FullName: "B", Email: "b@x", ServiceType: "Plumber", Location: "Pune"},
		models.Provider{FullName: "C", Email: "c@x", ServiceType: "electrician", Location: "Mumbai"},
	)

	tests := []struct {
		name     string
		criteria repository.ProviderSearchCriteria
		want     []string
	}{
		{"type only", repository.ProviderSearchCriteria{ServiceType: "ELECTRIC"}, []string{"A", "C"}},
		{"location only", repository.ProviderSearchCriteria{Location: "pune"}, []string{"A", "B"}},
		{"both", repository.ProviderSearchCriteria{ServiceType: "electrician", Location: "Pune"}, []string{"A"}},
		{"none", repository.ProviderSearchCriteria{}, []string{"A", "B", "C"}},
		{"no match", repository.ProviderSearchCriteria{ServiceType: "carpenter"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.Providers.Search(ctx, tt.criteria)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d providers, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.FullName != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, p.FullName, tt.want[i])
				}
			}
		})
	}
}

func TestDuplicateReview(t *testing.T) {
	ctx := context.Background()
	set := memory.NewSet()
	if err := set.Reviews.Create(ctx, &models.Review{BookingID: 5, Rating: 4}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := set.Reviews.Create(ctx, &models.Review{BookingID: 5, Rating: 2}); !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("second review err = %v, want ErrDuplicate", err)
	}
}

func seed(t *testing.T, repo repository.ProviderRepository, providers ...models.Provider) {
	t.Helper()
	for i := range providers {
		if err := repo.Create(context.Background(), &providers[i]); err != nil {
			t.Fatalf("seed provider: %v", err)
		}
	}
}
