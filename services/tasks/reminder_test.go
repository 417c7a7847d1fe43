package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventbook/models"

	"github.com/hibiken/asynq"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Queue: "default"}, nil
}

var payload = models.BalanceReminderPayload{
	BookingRef: "bk-1",
	UserID:     "u1",
	EventDate:  models.NewDate(2024, 3, 1),
	DueDate:    models.NewDate(2024, 2, 16),
	Balance:    500,
	Currency:   "php",
}

func TestBalanceReminderTaskRoundTrip(t *testing.T) {
	task, opts, err := NewBalanceReminderTask(payload, time.UTC)
	if err != nil {
		t.Fatalf("NewBalanceReminderTask: %v", err)
	}
	if task.Type() != TypeBalanceReminder {
		t.Errorf("type = %q", task.Type())
	}
	if len(opts) != 3 {
		t.Errorf("opts = %d, want 3", len(opts))
	}
	got, err := ParseBalanceReminder(task)
	if err != nil {
		t.Fatalf("ParseBalanceReminder: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %+v, want %+v", got, payload)
	}
}

func TestParseBalanceReminderRejectsGarbage(t *testing.T) {
	if _, err := ParseBalanceReminder(asynq.NewTask(TypeBalanceReminder, []byte("{"))); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestScheduleBalanceReminder(t *testing.T) {
	enq := &recordingEnqueuer{}
	s := NewBalanceReminderScheduler(enq, time.UTC, nil)
	if err := s.ScheduleBalanceReminder(context.Background(), payload); err != nil {
		t.Fatalf("ScheduleBalanceReminder: %v", err)
	}
	if len(enq.tasks) != 1 {
		t.Fatalf("enqueued %d tasks, want 1", len(enq.tasks))
	}
}

func TestScheduleBalanceReminderDuplicateIsNotAnError(t *testing.T) {
	s := NewBalanceReminderScheduler(&recordingEnqueuer{err: asynq.ErrTaskIDConflict}, time.UTC, nil)
	if err := s.ScheduleBalanceReminder(context.Background(), payload); err != nil {
		t.Fatalf("duplicate reminder: %v", err)
	}

	boom := errors.New("redis down")
	s = NewBalanceReminderScheduler(&recordingEnqueuer{err: boom}, time.UTC, nil)
	if err := s.ScheduleBalanceReminder(context.Background(), payload); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped redis error", err)
	}
}
