package booking_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"smarthub/database/repository"
	"smarthub/database/repository/memory"
	"smarthub/models"
	"smarthub/services/apperr"
	"smarthub/services/booking"
	"smarthub/services/notification"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zaptest"
)

// flakyNotifications fails inserts on demand to exercise rollback. failFor
// limits the failure to one receiver type.
type flakyNotifications struct {
	repository.NotificationRepository
	fail    bool
	failFor models.ReceiverType
}

func (f *flakyNotifications) Create(ctx context.Context, n *models.Notification) error {
	if f.fail || (f.failFor != "" && n.ReceiverType == f.failFor) {
		return errors.New("notifications: disk full")
	}
	return f.NotificationRepository.Create(ctx, n)
}

type reminderCall struct {
	bookingID int64
	at        time.Time
}

type recordingReminders struct {
	mu    sync.Mutex
	calls []reminderCall
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, reminderCall{id, at})
	return nil
}

// conflictingBookings fails every compare-and-set the way MongoDB reports two
// transactions writing the same booking.
type conflictingBookings struct {
	repository.BookingRepository
}

func (conflictingBookings) CompareAndSetStatus(_ context.Context, id int64, _, _ models.BookingStatus, _ time.Time) (*models.Booking, error) {
	err := mongo.CommandError{
		Code:    112,
		Name:    "WriteConflict",
		Message: "WriteConflict error: this operation conflicted with another operation",
		Labels:  []string{"TransientTransactionError"},
	}
	return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
}

// failingCommit runs fn and then reports a commit failure without a kind.
type failingCommit struct{}

func (failingCommit) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errors.New("commit failed: 100% of replicas unreachable")
}

// noErr marks table rows that expect success.
const noErr apperr.Kind = -1

var start = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	set       *repository.Set
	notifs    *flakyNotifications
	svc       *booking.DefaultBookingService
	reminders *recordingReminders
	clock     time.Time
	user      models.Actor
	provider  models.Actor
}

// newFixture seeds user 7 and provider 3 as in the booking walkthrough.
func newFixture(t *testing.T, policy booking.Policy) *fixture {
	t.Helper()
	ctx := context.Background()
	set := memory.NewSet()

	for id := int64(1); id <= 7; id++ {
		u := models.User{ID: id, FullName: fmt.Sprintf("User %d", id), Email: fmt.Sprintf("user%d@example.com", id)}
		if err := set.Users.Create(ctx, &u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	for id := int64(1); id <= 3; id++ {
		p := models.Provider{ID: id, FullName: fmt.Sprintf("Provider %d", id), Email: fmt.Sprintf("provider%d@example.com", id), ServiceType: "Plumber", Location: "Pune"}
		if err := set.Providers.Create(ctx, &p); err != nil {
			t.Fatalf("seed provider: %v", err)
		}
	}
	if policy.ReminderLead == 0 {
		policy.ReminderLead = time.Hour
	}

	f := &fixture{
		set:       set,
		notifs:    &flakyNotifications{NotificationRepository: set.Notifications},
		reminders: &recordingReminders{},
		clock:     start,
		user:      models.Actor{ID: 7, Role: models.RoleUser},
		provider:  models.Actor{ID: 3, Role: models.RoleProvider},
	}
	now := func() time.Time { return f.clock }
	relay := &notification.DefaultNotificationService{
		Repo:      f.notifs,
		Users:     set.Users,
		Providers: set.Providers,
		Logger:    zaptest.NewLogger(t),
		Now:       now,
	}
	f.svc = &booking.DefaultBookingService{
		Bookings:      set.Bookings,
		Users:         set.Users,
		Providers:     set.Providers,
		Notifications: relay,
		Tx:            set.Tx,
		Reminders:     f.reminders,
		Policy:        policy,
		Logger:        zaptest.NewLogger(t),
		Now:           now,
	}
	return f
}

func scenarioRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		UserID:      7,
		ProviderID:  3,
		ServiceType: "Plumber",
		BookingDate: "2025-03-10",
		BookingTime: "10:00:00",
	}
}

func (f *fixture) inbox(t *testing.T, r models.Receiver) []models.Notification {
	t.Helper()
	list, err := f.set.Notifications.ListByReceiver(context.Background(), r)
	if err != nil {
		t.Fatalf("ListByReceiver: %v", err)
	}
	return list
}

func (f *fixture) create(t *testing.T) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), f.user, scenarioRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return b
}

var (
	userInbox     = models.Receiver{ID: 7, Type: models.ReceiverUser}
	providerInbox = models.Receiver{ID: 3, Type: models.ReceiverProvider}
)

func TestCreateBooking(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	b := f.create(t)

	if b.ID == 0 || b.Status != models.StatusPending {
		t.Fatalf("got %+v, want assigned id and PENDING", b)
	}
	if !b.CreatedAt.Equal(start) {
		t.Errorf("createdAt = %v, want %v", b.CreatedAt, start)
	}

	inbox := f.inbox(t, providerInbox)
	if len(inbox) != 1 {
		t.Fatalf("provider has %d notifications, want 1", len(inbox))
	}
	n := inbox[0]
	if n.Type != models.NotificationBookingRequest || n.Status != models.NotificationUnread {
		t.Errorf("notification = %+v", n)
	}
	if n.RelatedBookingID == nil || *n.RelatedBookingID != b.ID {
		t.Errorf("relatedBookingId = %v, want %d", n.RelatedBookingID, b.ID)
	}
	if got := f.inbox(t, userInbox); len(got) != 0 {
		t.Errorf("user should have no notifications, has %d", len(got))
	}
}

func TestCreateBookingNormalizesTime(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	req := scenarioRequest()
	req.BookingTime = "14:30"
	req.ServiceType = ""

	b, err := f.svc.CreateBooking(context.Background(), f.user, req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.BookingTime != "14:30:00" {
		t.Errorf("bookingTime = %q, want 14:30:00", b.BookingTime)
	}
	if b.ServiceType != "Plumber" {
		t.Errorf("serviceType = %q, want provider default Plumber", b.ServiceType)
	}
}

func TestCreateBookingErrors(t *testing.T) {
	tests := []struct {
		name   string
		actor  models.Actor
		mutate func(*models.CreateBookingRequest)
		want   apperr.Kind
	}{
		{"missing date", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.BookingDate = "" }, apperr.KindValidation},
		{"missing time", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.BookingTime = "" }, apperr.KindValidation},
		{"malformed date", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.BookingDate = "10/03/2025" }, apperr.KindValidation},
		{"impossible date", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.BookingDate = "2025-02-30" }, apperr.KindValidation},
		{"malformed time", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.BookingTime = "25:00:00" }, apperr.KindValidation},
		{"past", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.BookingDate = "2025-02-28" }, apperr.KindValidation},
		{"unknown provider", models.Actor{ID: 7, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.ProviderID = 42 }, apperr.KindNotFound},
		{"unknown user", models.Actor{ID: 99, Role: models.RoleUser}, func(r *models.CreateBookingRequest) { r.UserID = 99 }, apperr.KindNotFound},
		{"booking for someone else", models.Actor{ID: 6, Role: models.RoleUser}, func(*models.CreateBookingRequest) {}, apperr.KindForbidden},
		{"provider cannot book", models.Actor{ID: 7, Role: models.RoleProvider}, func(*models.CreateBookingRequest) {}, apperr.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, booking.Policy{})
			req := scenarioRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateBooking(context.Background(), tt.actor, req)
			if got := apperr.KindOf(err); got != tt.want {
				t.Fatalf("kind = %v (%v), want %v", got, err, tt.want)
			}
			all, _ := f.set.Bookings.ListAll(context.Background())
			if len(all) != 0 {
				t.Errorf("%d bookings stored after failure", len(all))
			}
			if got := f.inbox(t, providerInbox); len(got) != 0 {
				t.Errorf("%d notifications stored after failure", len(got))
			}
		})
	}
}

func TestAcceptNotifiesUser(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	b := f.create(t)

	got, err := f.svc.Transition(context.Background(), b.ID, f.provider, models.ActionAccept)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got.Status != models.StatusAccepted {
		t.Errorf("status = %s, want ACCEPTED", got.Status)
	}

	inbox := f.inbox(t, userInbox)
	if len(inbox) != 1 {
		t.Fatalf("user has %d notifications, want 1", len(inbox))
	}
	if inbox[0].Type != models.NotificationBookingAccepted || !strings.Contains(inbox[0].Message, "accepted") {
		t.Errorf("notification = %+v", inbox[0])
	}

	if len(f.reminders.calls) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(f.reminders.calls))
	}
	wantAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if c := f.reminders.calls[0]; c.bookingID != b.ID || !c.at.Equal(wantAt) {
		t.Errorf("reminder = %+v, want booking %d at %v", c, b.ID, wantAt)
	}
}

func TestRejectNotifiesUser(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	b := f.create(t)

	got, err := f.svc.Transition(context.Background(), b.ID, f.provider, models.ActionReject)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %s, want REJECTED", got.Status)
	}
	inbox := f.inbox(t, userInbox)
	if len(inbox) != 1 || inbox[0].Type != models.NotificationBookingRejected {
		t.Errorf("user inbox = %+v, want one BOOKING_REJECTED", inbox)
	}
	if len(f.reminders.calls) != 0 {
		t.Errorf("reject must not schedule reminders")
	}
}

func TestDoubleAccept(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	b := f.create(t)
	ctx := context.Background()

	if _, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	_, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept)
	if !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Fatalf("second accept err = %v, want InvalidTransition", err)
	}

	stored, _ := f.set.Bookings.GetByID(ctx, b.ID)
	if stored.Status != models.StatusAccepted {
		t.Errorf("status = %s, want ACCEPTED", stored.Status)
	}
	if got := f.inbox(t, userInbox); len(got) != 1 {
		t.Errorf("user has %d notifications, want exactly 1", len(got))
	}
}

func TestConcurrentAccept(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	b := f.create(t)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Transition(context.Background(), b.ID, f.provider, models.ActionAccept)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperr.Is(err, apperr.KindInvalidTransition):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != workers-1 {
		t.Errorf("successes=%d conflicts=%d, want 1 and %d", successes, conflicts, workers-1)
	}
	if got := f.inbox(t, userInbox); len(got) != 1 {
		t.Errorf("user has %d notifications, want exactly 1", len(got))
	}
}

func TestStateMachine(t *testing.T) {
	admin := models.Actor{Role: models.RoleAdmin}
	user := models.Actor{ID: 7, Role: models.RoleUser}
	provider := models.Actor{ID: 3, Role: models.RoleProvider}

	type step struct {
		actor  models.Actor
		action models.BookingAction
	}
	tests := []struct {
		name   string
		setup  []step
		try    step
		want   models.BookingStatus
		err    apperr.Kind
		notify models.Receiver
	}{
		{"pending cancel", nil, step{user, models.ActionCancel}, models.StatusCancelled, noErr, providerInbox},
		{"accepted complete by provider", []step{{provider, models.ActionAccept}}, step{provider, models.ActionComplete}, models.StatusCompleted, noErr, userInbox},
		{"accepted complete by admin", []step{{provider, models.ActionAccept}}, step{admin, models.ActionComplete}, models.StatusCompleted, noErr, userInbox},
		{"pending complete", nil, step{provider, models.ActionComplete}, models.StatusPending, apperr.KindInvalidTransition, models.Receiver{}},
		{"rejected accept", []step{{provider, models.ActionReject}}, step{provider, models.ActionAccept}, models.StatusRejected, apperr.KindInvalidTransition, models.Receiver{}},
		{"cancelled accept", []step{{user, models.ActionCancel}}, step{provider, models.ActionAccept}, models.StatusCancelled, apperr.KindInvalidTransition, models.Receiver{}},
		{"completed cancel", []step{{provider, models.ActionAccept}, {provider, models.ActionComplete}}, step{user, models.ActionCancel}, models.StatusCompleted, apperr.KindInvalidTransition, models.Receiver{}},
		{"accepted reject", []step{{provider, models.ActionAccept}}, step{provider, models.ActionReject}, models.StatusAccepted, apperr.KindInvalidTransition, models.Receiver{}},
		{"user cannot accept", nil, step{user, models.ActionAccept}, models.StatusPending, apperr.KindForbidden, models.Receiver{}},
		{"other provider cannot reject", nil, step{models.Actor{ID: 2, Role: models.RoleProvider}, models.ActionReject}, models.StatusPending, apperr.KindForbidden, models.Receiver{}},
		{"provider cannot cancel", nil, step{provider, models.ActionCancel}, models.StatusPending, apperr.KindForbidden, models.Receiver{}},
		{"other user cannot cancel", nil, step{models.Actor{ID: 6, Role: models.RoleUser}, models.ActionCancel}, models.StatusPending, apperr.KindForbidden, models.Receiver{}},
		{"user cannot complete", []step{{provider, models.ActionAccept}}, step{user, models.ActionComplete}, models.StatusAccepted, apperr.KindForbidden, models.Receiver{}},
		{"unknown action", nil, step{provider, "APPROVE"}, models.StatusPending, apperr.KindValidation, models.Receiver{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, booking.Policy{})
			ctx := context.Background()
			b := f.create(t)
			for _, s := range tt.setup {
				if _, err := f.svc.Transition(ctx, b.ID, s.actor, s.action); err != nil {
					t.Fatalf("setup %s: %v", s.action, err)
				}
			}
			before := len(f.inbox(t, userInbox)) + len(f.inbox(t, providerInbox))

			_, err := f.svc.Transition(ctx, b.ID, tt.try.actor, tt.try.action)
			if tt.err == noErr && err != nil {
				t.Fatalf("Transition: %v", err)
			}
			if tt.err != noErr && !apperr.Is(err, tt.err) {
				t.Fatalf("err = %v, want kind %v", err, tt.err)
			}

			stored, _ := f.set.Bookings.GetByID(ctx, b.ID)
			if stored.Status != tt.want {
				t.Errorf("status = %s, want %s", stored.Status, tt.want)
			}

			after := len(f.inbox(t, userInbox)) + len(f.inbox(t, providerInbox))
			if tt.err != noErr {
				if after != before {
					t.Errorf("failed transition emitted %d notifications", after-before)
				}
				return
			}
			if after != before+1 {
				t.Errorf("successful transition emitted %d notifications, want 1", after-before)
			}
			if inbox := f.inbox(t, tt.notify); len(inbox) == 0 || *inbox[0].RelatedBookingID != b.ID {
				t.Errorf("counter-party %+v did not get the notification", tt.notify)
			}
		})
	}
}

func TestTransitionUnknownBooking(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	_, err := f.svc.Transition(context.Background(), 404, f.provider, models.ActionAccept)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

// Cancelling an accepted booking is a policy decision; both settings are pinned here.
func TestCancelAcceptedPolicy(t *testing.T) {
	tests := []struct {
		name    string
		allow   bool
		want    models.BookingStatus
		wantErr apperr.Kind
	}{
		{"disallowed by default", false, models.StatusAccepted, apperr.KindInvalidTransition},
		{"allowed by policy", true, models.StatusCancelled, noErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, booking.Policy{AllowCancelAccepted: tt.allow})
			ctx := context.Background()
			b := f.create(t)
			if _, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept); err != nil {
				t.Fatalf("accept: %v", err)
			}

			_, err := f.svc.Transition(ctx, b.ID, f.user, models.ActionCancel)
			if tt.wantErr == noErr && err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if tt.wantErr != noErr && !apperr.Is(err, tt.wantErr) {
				t.Fatalf("cancel err = %v, want %v", err, tt.wantErr)
			}

			stored, _ := f.set.Bookings.GetByID(ctx, b.ID)
			if stored.Status != tt.want {
				t.Errorf("status = %s, want %s", stored.Status, tt.want)
			}
			cancelled := 0
			for _, n := range f.inbox(t, providerInbox) {
				if n.Type == models.NotificationBookingCancelled {
					cancelled++
				}
			}
			if tt.allow && cancelled != 1 || !tt.allow && cancelled != 0 {
				t.Errorf("provider got %d cancellation notices", cancelled)
			}
		})
	}
}

func TestNotificationFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		f := newFixture(t, booking.Policy{})
		f.notifs.fail = true

		_, err := f.svc.CreateBooking(ctx, f.user, scenarioRequest())
		if !apperr.Is(err, apperr.KindTransport) {
			t.Fatalf("err = %v, want Transport", err)
		}
		all, _ := f.set.Bookings.ListAll(ctx)
		if len(all) != 0 {
			t.Errorf("booking committed without its notification: %+v", all)
		}
	})

	t.Run("transition", func(t *testing.T) {
		f := newFixture(t, booking.Policy{})
		b := f.create(t)
		f.notifs.fail = true

		_, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept)
		if !apperr.Is(err, apperr.KindTransport) {
			t.Fatalf("err = %v, want Transport", err)
		}
		stored, _ := f.set.Bookings.GetByID(ctx, b.ID)
		if stored.Status != models.StatusPending {
			t.Errorf("status = %s, want PENDING after rollback", stored.Status)
		}
		if len(f.reminders.calls) != 0 {
			t.Errorf("reminder scheduled for rolled back accept")
		}

		// The booking is still actionable once the store recovers.
		f.notifs.fail = false
		if _, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept); err != nil {
			t.Errorf("retry accept: %v", err)
		}
	})
}

func TestListsNewestFirst(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		f.clock = f.clock.Add(time.Minute)
		ids = append(ids, f.create(t).ID)
	}

	lists := []struct {
		name string
		list func(context.Context, int64) ([]models.Booking, error)
		id   int64
	}{
		{"user", f.svc.ListForUser, 7},
		{"provider", f.svc.ListForProvider, 3},
	}
	for _, l := range lists {
		got, err := l.list(ctx, l.id)
		if err != nil {
			t.Fatalf("%s list: %v", l.name, err)
		}
		if len(got) != 3 || got[0].ID != ids[2] || got[2].ID != ids[0] {
			t.Errorf("%s list = %v, want newest first of %v", l.name, got, ids)
		}
	}

	other, _ := f.svc.ListForUser(ctx, 6)
	if len(other) != 0 {
		t.Errorf("user 6 sees %d bookings", len(other))
	}
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	b := f.create(t)
	ctx := context.Background()

	for _, actor := range []models.Actor{f.user, f.provider, {Role: models.RoleAdmin}} {
		if _, err := f.svc.Get(ctx, actor, b.ID); err != nil {
			t.Errorf("Get as %+v: %v", actor, err)
		}
	}
	for _, actor := range []models.Actor{{ID: 6, Role: models.RoleUser}, {ID: 7, Role: models.RoleProvider}} {
		if _, err := f.svc.Get(ctx, actor, b.ID); !apperr.Is(err, apperr.KindNotFound) {
			t.Errorf("Get as %+v err = %v, want NotFound", actor, err)
		}
	}
}

func TestSendReminder(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	ctx := context.Background()
	b := f.create(t)

	// Still pending: nothing to remind.
	if err := f.svc.SendReminder(ctx, b.ID); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}
	if got := f.inbox(t, userInbox); len(got) != 0 {
		t.Fatalf("pending booking produced %d reminders", len(got))
	}

	if _, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.SendReminder(ctx, b.ID); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}

	for _, r := range []models.Receiver{userInbox, providerInbox} {
		found := false
		for _, n := range f.inbox(t, r) {
			if n.Type == models.NotificationBookingReminder {
				found = true
			}
		}
		if !found {
			t.Errorf("%+v did not get a reminder", r)
		}
	}
}

func TestTransitionWriteConflictIsInvalidTransition(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	ctx := context.Background()
	b := f.create(t)
	f.svc.Bookings = conflictingBookings{BookingRepository: f.set.Bookings}

	_, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept)
	if !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Fatalf("Transition err = %v (kind %v), want InvalidTransition", err, apperr.KindOf(err))
	}

	stored, err := f.set.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", stored.Status)
	}
	if got := f.inbox(t, userInbox); len(got) != 0 {
		t.Errorf("user got %d notifications after a lost race, want 0", len(got))
	}
}

func TestSendReminderIsAtomic(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	ctx := context.Background()
	b := f.create(t)
	if _, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	countReminders := func(r models.Receiver) int {
		n := 0
		for _, note := range f.inbox(t, r) {
			if note.Type == models.NotificationBookingReminder {
				n++
			}
		}
		return n
	}

	// The provider side fails after the user reminder was written.
	f.notifs.failFor = models.ReceiverProvider
	if err := f.svc.SendReminder(ctx, b.ID); !apperr.Is(err, apperr.KindTransport) {
		t.Fatalf("SendReminder err = %v, want Transport", err)
	}
	if got := countReminders(userInbox); got != 0 {
		t.Fatalf("user reminders after failed send = %d, want 0", got)
	}

	// The retried task delivers exactly one reminder to each side.
	f.notifs.failFor = ""
	if err := f.svc.SendReminder(ctx, b.ID); err != nil {
		t.Fatalf("SendReminder retry: %v", err)
	}
	for _, r := range []models.Receiver{userInbox, providerInbox} {
		if got := countReminders(r); got != 1 {
			t.Errorf("%+v reminders = %d, want 1", r, got)
		}
	}
}

func TestCommitFailureIsTransport(t *testing.T) {
	f := newFixture(t, booking.Policy{})
	ctx := context.Background()
	b := f.create(t)
	f.svc.Tx = failingCommit{}

	tests := []struct {
		name string
		call func() error
	}{
		{"create", func() error {
			_, err := f.svc.CreateBooking(ctx, f.user, scenarioRequest())
			return err
		}},
		{"transition", func() error {
			_, err := f.svc.Transition(ctx, b.ID, f.provider, models.ActionAccept)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !apperr.Is(err, apperr.KindTransport) {
				t.Fatalf("err = %v, want Transport", err)
			}
			if got := apperr.MessageOf(err); got != "booking transaction failed" {
				t.Errorf("message = %q, want %q", got, "booking transaction failed")
			}
			if !strings.Contains(err.Error(), "100% of replicas") {
				t.Errorf("cause lost: %v", err)
			}
		})
	}
}
