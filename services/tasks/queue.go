package tasks

import (
	"context"
	"errors"
	"time"

	"smarthub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the subset of *asynq.Client used by Queue.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue hands push and reminder work to asynq. It implements
// notification.Dispatcher and booking.ReminderScheduler.
type Queue struct {
	Client Enqueuer
	Logger *zap.Logger
}

func NewQueue(client *asynq.Client, logger *zap.Logger) *Queue {
	return &Queue{Client: client, Logger: logger}
}

func (q *Queue) EnqueuePush(ctx context.Context, n models.Notification) error {
	task, opts, err := NewPushTask(n)
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task, opts)
}

func (q *Queue) ScheduleReminder(ctx context.Context, bookingID int64, at time.Time) error {
	task, opts, err := NewReminderTask(bookingID, at)
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task, opts)
}

func (q *Queue) enqueue(ctx context.Context, task *asynq.Task, opts []asynq.Option) error {
	info, err := q.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	if q.Logger != nil {
		q.Logger.Debug("Task enqueued",
			zap.String("type", task.Type()),
			zap.String("taskId", info.ID),
			zap.Time("processAt", info.NextProcessAt),
		)
	}
	return nil
}
