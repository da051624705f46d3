package client

import (
	"context"
	"time"

	"smarthub/config"
	"smarthub/models"

	"go.uber.org/zap"
)

// DefaultPollInterval is the inbox refresh period when none is configured.
const DefaultPollInterval = 15 * time.Second

// Inbox lists one receiver's notifications.
type Inbox interface {
	ListNotifications(ctx context.Context, receiverID int64) ([]models.Notification, error)
}

// Update is one successful poll.
type Update struct {
	Notifications []models.Notification
	Unread        int
	// New holds notifications not seen by an earlier poll.
	New []models.Notification
}

// Poller refreshes an inbox on a fixed interval.
type Poller struct {
	Inbox      Inbox
	ReceiverID int64
	Interval   time.Duration
	Logger     *zap.Logger

	seen map[int64]bool
}

// NewPoller builds a poller that refreshes every NOTIFICATION_POLL_INTERVAL.
func NewPoller(inbox Inbox, receiverID int64, logger *zap.Logger) *Poller {
	return &Poller{
		Inbox:      inbox,
		ReceiverID: receiverID,
		Interval:   config.AppConfig.NotificationPollInterval,
		Logger:     logger,
	}
}

func (p *Poller) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultPollInterval
	}
	return p.Interval
}

// Run polls immediately and then every Interval, calling onUpdate after each
// successful fetch. Failed polls are logged and retried on the next tick.
// Run returns ctx.Err() once ctx is cancelled.
func (p *Poller) Run(ctx context.Context, onUpdate func(Update)) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if p.seen == nil {
		p.seen = make(map[int64]bool)
	}

	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if u, err := p.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("Notification poll failed", zap.Int64("receiverId", p.ReceiverID), zap.Error(err))
		} else {
			onUpdate(u)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) (Update, error) {
	list, err := p.Inbox.ListNotifications(ctx, p.ReceiverID)
	if err != nil {
		return Update{}, err
	}
	u := Update{Notifications: list}
	for _, n := range list {
		if n.Status == models.NotificationUnread {
			u.Unread++
		}
		if !p.seen[n.ID] {
			p.seen[n.ID] = true
			u.New = append(u.New, n)
		}
	}
	return u, nil
}
