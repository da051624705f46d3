package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"smarthub/config"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap/zaptest"
)

func TestClientErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   apperr.Kind
		msg    string
	}{
		{http.StatusBadRequest, `{"message":"bookingDate is required"}`, apperr.KindValidation, "bookingDate is required"},
		{http.StatusForbidden, `{"message":"nope"}`, apperr.KindForbidden, "nope"},
		{http.StatusNotFound, `{"message":"booking 9 not found"}`, apperr.KindNotFound, "booking 9 not found"},
		{http.StatusConflict, `{"message":"cannot accept booking 1: status is ACCEPTED"}`, apperr.KindInvalidTransition, "cannot accept booking 1: status is ACCEPTED"},
		{http.StatusBadGateway, ``, apperr.KindTransport, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "tok").Transition(context.Background(), 1, models.ActionAccept)
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
			if got := apperr.MessageOf(err); got != tt.msg {
				t.Errorf("message = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestClientRequests(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	var gotBody models.StatusChangeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		switch {
		case r.Method == http.MethodPatch && r.URL.Path == "/api/bookings/5/status":
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(models.Booking{ID: 5, Status: models.StatusAccepted})
		case r.URL.Path == "/api/notifications/7/read-all":
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL+"/", "tok")
	ctx := context.Background()

	b, err := c.Transition(ctx, 5, models.ActionAccept)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if b.Status != models.StatusAccepted || gotBody.Action != models.ActionAccept || gotAuth != "Bearer tok" {
		t.Errorf("booking=%+v body=%+v auth=%q", b, gotBody, gotAuth)
	}

	if err := c.MarkAllRead(ctx, 7); err != nil {
		t.Errorf("MarkAllRead: %v", err)
	}

	if _, err := c.SearchProviders(ctx, "electrician", "Pune"); err != nil {
		t.Fatalf("SearchProviders: %v", err)
	}
	if gotPath != "/api/provider/search" || gotQuery != "location=Pune&type=electrician" {
		t.Errorf("search hit %s?%s", gotPath, gotQuery)
	}
}

func TestClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, "").ListNotifications(context.Background(), 1)
	if !apperr.Is(err, apperr.KindTransport) {
		t.Errorf("err = %v, want Transport", err)
	}
}

// scriptedInbox returns one scripted response per call and then repeats the last.
type scriptedInbox struct {
	mu      sync.Mutex
	calls   int
	results []func() ([]models.Notification, error)
}

func (s *scriptedInbox) ListNotifications(context.Context, int64) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i]()
}

func (s *scriptedInbox) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func unread(id int64) models.Notification {
	return models.Notification{ID: id, Status: models.NotificationUnread}
}

func TestPollerReportsNewNotifications(t *testing.T) {
	inbox := &scriptedInbox{results: []func() ([]models.Notification, error){
		func() ([]models.Notification, error) { return []models.Notification{unread(1)}, nil },
		func() ([]models.Notification, error) { return nil, errors.New("connection refused") },
		func() ([]models.Notification, error) {
			return []models.Notification{unread(2), {ID: 1, Status: models.NotificationRead}}, nil
		},
	}}
	p := &Poller{Inbox: inbox, ReceiverID: 7, Interval: 5 * time.Millisecond, Logger: zaptest.NewLogger(t)}

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Update, 16)
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, func(u Update) {
			select {
			case updates <- u:
			default:
			}
		})
	}()

	first := <-updates
	if len(first.New) != 1 || first.New[0].ID != 1 || first.Unread != 1 {
		t.Fatalf("first update = %+v", first)
	}
	// The failed poll produces no update; the next success reports only notification 2.
	second := <-updates
	if len(second.New) != 1 || second.New[0].ID != 2 || second.Unread != 1 || len(second.Notifications) != 2 {
		t.Fatalf("second update = %+v", second)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
	calls := inbox.count()
	time.Sleep(20 * time.Millisecond)
	if inbox.count() != calls {
		t.Errorf("poller kept fetching after cancel: %d -> %d", calls, inbox.count())
	}
}

func TestPollerStopsBeforeFirstFetchWhenCancelled(t *testing.T) {
	inbox := &scriptedInbox{results: []func() ([]models.Notification, error){
		func() ([]models.Notification, error) { return nil, nil },
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&Poller{Inbox: inbox, Interval: time.Millisecond}).Run(ctx, func(Update) {})
	if !errors.Is(err, context.Canceled) || inbox.count() != 0 {
		t.Errorf("err=%v calls=%d, want Canceled and no fetch", err, inbox.count())
	}
}

func TestNewPollerUsesConfiguredInterval(t *testing.T) {
	prev := config.AppConfig.NotificationPollInterval
	t.Cleanup(func() { config.AppConfig.NotificationPollInterval = prev })

	tests := []struct {
		name       string
		configured time.Duration
		want       time.Duration
	}{
		{"configured", 3 * time.Second, 3 * time.Second},
		{"unset", 0, DefaultPollInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.AppConfig.NotificationPollInterval = tt.configured
			p := NewPoller(&scriptedInbox{}, 7, zaptest.NewLogger(t))
			if got := p.interval(); got != tt.want {
				t.Errorf("interval = %v, want %v", got, tt.want)
			}
			if p.ReceiverID != 7 {
				t.Errorf("ReceiverID = %d, want 7", p.ReceiverID)
			}
		})
	}
}
