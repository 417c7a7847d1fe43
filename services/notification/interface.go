package notification

import (
	"context"
	"fmt"

	"eventbook/models"

	"go.uber.org/zap"
)

// Notifier tells a customer about an upcoming payment obligation.
type Notifier interface {
	NotifyBalanceDue(ctx context.Context, p models.BalanceReminderPayload) error
}

// LogNotifier records reminders in the application log. It is the default
// delivery channel until a push or email provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) (*LogNotifier, error) {
	if logger == nil {
		return nil, fmt.Errorf("notification service initialization error: logger is nil")
	}
	return &LogNotifier{logger: logger}, nil
}

func (n *LogNotifier) NotifyBalanceDue(ctx context.Context, p models.BalanceReminderPayload) error {
	if p.BookingRef == "" {
		return fmt.Errorf("balance reminder without booking reference")
	}
	n.logger.Info("Balance due reminder",
		zap.String("bookingRef", p.BookingRef),
		zap.String("userID", p.UserID),
		zap.String("eventDate", p.EventDate.String()),
		zap.String("dueDate", p.DueDate.String()),
		zap.Int64("balance", p.Balance),
		zap.String("currency", p.Currency))
	return nil
}
