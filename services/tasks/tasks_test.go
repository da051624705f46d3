package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"smarthub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap/zaptest"
)

type fakeClient struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

func TestNewPushTask(t *testing.T) {
	related := int64(12)
	n := models.Notification{ID: 5, ReceiverID: 3, ReceiverType: models.ReceiverProvider, Type: models.NotificationBookingRequest, Message: "New booking", RelatedBookingID: &related}

	task, opts, err := NewPushTask(n)
	if err != nil {
		t.Fatalf("NewPushTask: %v", err)
	}
	if task.Type() != TypeNotificationPush {
		t.Errorf("type = %q", task.Type())
	}
	var p models.PushPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.NotificationID != 5 || p.ReceiverType != models.ReceiverProvider || p.RelatedBookingID == nil || *p.RelatedBookingID != 12 {
		t.Errorf("payload = %+v", p)
	}

	found := false
	for _, o := range opts {
		if o.Type() == asynq.TaskIDOpt && o.Value() == "push:5" {
			found = true
		}
	}
	if !found {
		t.Errorf("options %v lack task id push:5", opts)
	}
}

func TestQueue(t *testing.T) {
	client := &fakeClient{}
	q := &Queue{Client: client, Logger: zaptest.NewLogger(t)}
	ctx := context.Background()

	if err := q.EnqueuePush(ctx, models.Notification{ID: 1}); err != nil {
		t.Fatalf("EnqueuePush: %v", err)
	}
	if err := q.ScheduleReminder(ctx, 9, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("ScheduleReminder: %v", err)
	}
	if len(client.tasks) != 2 || client.tasks[1].Type() != TypeBookingReminder {
		t.Fatalf("enqueued %v", client.tasks)
	}
	var p models.ReminderPayload
	if err := json.Unmarshal(client.tasks[1].Payload(), &p); err != nil || p.BookingID != 9 {
		t.Errorf("reminder payload = %+v, %v", p, err)
	}

	client.err = asynq.ErrTaskIDConflict
	if err := q.EnqueuePush(ctx, models.Notification{ID: 1}); err != nil {
		t.Errorf("duplicate push should be ignored, got %v", err)
	}
}
