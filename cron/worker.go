package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"smarthub/config"
	"smarthub/models"
	"smarthub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Pusher delivers one stored notification to the receiver's device.
type Pusher interface {
	Push(ctx context.Context, payload models.PushPayload) error
}

// Reminder fires the reminder of one booking.
type Reminder interface {
	SendReminder(ctx context.Context, bookingID int64) error
}

// Worker runs the asynq server for push and reminder tasks.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// RedisOpt builds the asynq connection from config.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

func NewWorker(opt asynq.RedisConnOpt, pusher Pusher, reminders Reminder, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	return &Worker{
		srv:    srv,
		mux:    NewServeMux(pusher, reminders, logger),
		logger: logger,
	}
}

// NewServeMux registers the task handlers.
func NewServeMux(pusher Pusher, reminders Reminder, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationPush, handlePushTask(pusher, logger))
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(reminders, logger))
	return mux
}

// Start runs the worker in the background.
func (w *Worker) Start() error {
	w.logger.Info("Starting task worker")
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start task worker: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
	w.logger.Info("Task worker stopped")
}

func handlePushTask(pusher Pusher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid push payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := pusher.Push(ctx, p); err != nil {
			logger.Warn("Push failed", zap.Int64("notificationId", p.NotificationID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleReminderTask(reminders Reminder, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger.Info("Triggering booking reminder", zap.Int64("bookingId", p.BookingID))
		if err := reminders.SendReminder(ctx, p.BookingID); err != nil {
			logger.Warn("Reminder failed", zap.Int64("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
