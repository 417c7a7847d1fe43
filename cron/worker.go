package cron

import (
	"context"
	"time"

	"eventbook/config"
	"eventbook/services/notification"
	"eventbook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection for the reminder queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker starts the asynq worker in the background and returns the
// server; the caller owns its shutdown.
func InitReminderWorker(notifier notification.Notifier, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBalanceReminder, HandleBalanceReminder(notifier, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker giving up; balance reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleBalanceReminder delivers one queued balance reminder. Malformed
// payloads are dropped rather than retried.
func HandleBalanceReminder(notifier notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBalanceReminder(task)
		if err != nil {
			logger.Error("Dropping balance reminder", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := notifier.NotifyBalanceDue(ctx, p); err != nil {
			logger.Error("Failed to deliver balance reminder",
				zap.String("bookingRef", p.BookingRef), zap.Error(err))
			return err
		}
		return nil
	}
}
