package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBalanceReminder = "payment:balance-reminder"

// reminderHour is the local hour at which a balance reminder fires on its due date.
const reminderHour = 9

// NewBalanceReminderTask builds the queued task for p. The task id is derived
// from the booking so a repeated down payment does not queue a second reminder.
func NewBalanceReminderTask(p models.BalanceReminderPayload, loc *time.Location) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	fireAt := p.DueDate.In(loc).Add(reminderHour * time.Hour)

	task := asynq.NewTask(TypeBalanceReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("balance-reminder:" + p.BookingRef),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// ParseBalanceReminder decodes a task built by NewBalanceReminderTask.
func ParseBalanceReminder(task *asynq.Task) (models.BalanceReminderPayload, error) {
	var p models.BalanceReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid balance reminder payload: %w", err)
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client used for scheduling.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BalanceReminderScheduler queues balance reminders on asynq.
type BalanceReminderScheduler struct {
	client Enqueuer
	loc    *time.Location
	logger *zap.Logger
}

func NewBalanceReminderScheduler(client Enqueuer, loc *time.Location, logger *zap.Logger) *BalanceReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceReminderScheduler{client: client, loc: loc, logger: logger}
}

func (s *BalanceReminderScheduler) ScheduleBalanceReminder(ctx context.Context, p models.BalanceReminderPayload) error {
	task, opts, err := NewBalanceReminderTask(p, s.loc)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		s.logger.Debug("Balance reminder already queued", zap.String("bookingRef", p.BookingRef))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue balance reminder: %w", err)
	}
	s.logger.Debug("Balance reminder enqueued",
		zap.String("taskID", info.ID), zap.String("queue", info.Queue))
	return nil
}
