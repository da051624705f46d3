// Package client is a REST client for the booking service, used by
// dashboards and CLIs that poll the notification inbox.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smarthub/models"
	"smarthub/services/apperr"
)

// Client calls the booking service as one authenticated actor.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// kindFor maps a response status back to the service's error kind.
func kindFor(status int) apperr.Kind {
	switch status {
	case http.StatusBadRequest:
		return apperr.KindValidation
	case http.StatusForbidden:
		return apperr.KindForbidden
	case http.StatusNotFound:
		return apperr.KindNotFound
	case http.StatusConflict:
		return apperr.KindInvalidTransition
	}
	return apperr.KindTransport
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return apperr.Transport(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &apperr.Error{Kind: kindFor(resp.StatusCode), Message: e.Message}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Transport(err, "decode %s response", path)
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	var b models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) Transition(ctx context.Context, bookingID int64, action models.BookingAction) (*models.Booking, error) {
	var b models.Booking
	if err := c.do(ctx, http.MethodPatch, "/api/bookings/"+id(bookingID)+"/status", models.StatusChangeRequest{Action: action}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) ListNotifications(ctx context.Context, receiverID int64) ([]models.Notification, error) {
	var list []models.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications/"+id(receiverID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) UnreadCount(ctx context.Context, receiverID int64) (int64, error) {
	var n models.UnreadCount
	if err := c.do(ctx, http.MethodGet, "/api/notifications/"+id(receiverID)+"/unread-count", nil, &n); err != nil {
		return 0, err
	}
	return n.Unread, nil
}

func (c *Client) MarkRead(ctx context.Context, notificationID int64) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/"+id(notificationID)+"/read", nil, nil)
}

func (c *Client) MarkAllRead(ctx context.Context, receiverID int64) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/"+id(receiverID)+"/read-all", nil, nil)
}

func (c *Client) SearchProviders(ctx context.Context, serviceType, location string) ([]models.Provider, error) {
	q := url.Values{}
	if serviceType != "" {
		q.Set("type", serviceType)
	}
	if location != "" {
		q.Set("location", location)
	}
	path := "/api/provider/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var providers []models.Provider
	if err := c.do(ctx, http.MethodGet, path, nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}
