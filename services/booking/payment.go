package booking

import (
	"context"
	"fmt"
	"strings"

	"eventbook/models"
	"eventbook/services/payment"

	"go.uber.org/zap"
)

// DownPaymentRequest asks for a down payment to be collected on a booking.
type DownPaymentRequest struct {
	BookingRef string        `json:"bookingRef" binding:"required"`
	UserID     string        `json:"-"`
	Total      int64         `json:"total"`
	Policy     models.Policy `json:"policy" binding:"required"`
	EventDate  models.Date   `json:"eventDate"`
}

// DownPaymentResult is the split, the gateway intent and whether a balance
// reminder was queued.
type DownPaymentResult struct {
	Split             models.PaymentSplit       `json:"split"`
	Intent            *models.DownPaymentIntent `json:"intent"`
	ReminderScheduled bool                      `json:"reminderScheduled"`
	BalanceDueDate    *models.Date              `json:"balanceDueDate,omitempty"`
}

// SplitPayment divides total into down payment and balance under policy.
func (s *DefaultBookingService) SplitPayment(total int64, policy models.Policy) (models.PaymentSplit, error) {
	return payment.Split(total, policy)
}

// StartDownPayment splits the total, opens a gateway intent for the down
// payment and, when a balance remains, queues a reminder for it. A failure to
// queue the reminder is logged and does not fail the payment.
func (s *DefaultBookingService) StartDownPayment(ctx context.Context, req DownPaymentRequest) (*DownPaymentResult, error) {
	logger := s.logger()
	if strings.TrimSpace(req.BookingRef) == "" {
		return nil, models.NewValidationError("bookingRef", "is required")
	}

	split, err := payment.Split(req.Total, req.Policy)
	if err != nil {
		return nil, err
	}

	intent, err := s.Gateway.CreateDownPaymentIntent(ctx, split, req.BookingRef)
	if err != nil {
		return nil, err
	}
	result := &DownPaymentResult{Split: split, Intent: intent}

	if split.Balance == 0 || s.Reminders == nil || req.EventDate.IsZero() {
		return result, nil
	}

	due := s.balanceDueDate(req.EventDate)
	result.BalanceDueDate = &due
	payload := models.BalanceReminderPayload{
		BookingRef: req.BookingRef,
		UserID:     req.UserID,
		EventDate:  req.EventDate,
		DueDate:    due,
		Balance:    split.Balance,
		Currency:   s.Currency,
	}
	if err := s.Reminders.ScheduleBalanceReminder(ctx, payload); err != nil {
		logger.Error("StartDownPayment: failed to schedule balance reminder",
			zap.String("bookingRef", req.BookingRef), zap.Error(err))
		return result, nil
	}
	result.ReminderScheduled = true
	logger.Info("Balance reminder scheduled",
		zap.String("bookingRef", req.BookingRef),
		zap.String("dueDate", due.String()),
		zap.Int64("balance", split.Balance))
	return result, nil
}

// balanceDueDate is BalanceDueDays before the event, but never before today.
func (s *DefaultBookingService) balanceDueDate(eventDate models.Date) models.Date {
	due := eventDate.AddDays(-s.BalanceDueDays)
	today := models.DateOf(s.now())
	if due.Before(today) {
		return today
	}
	return due
}

func (s *DefaultBookingService) CreateBond(ctx context.Context, bookingRef string, amount int64) (*models.CashBond, error) {
	bond, err := payment.NewCashBond(s.newID(), bookingRef, amount, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Bonds.Create(ctx, &bond); err != nil {
		s.logger().Error("CreateBond: failed to store bond", zap.String("bookingRef", bookingRef), zap.Error(err))
		return nil, fmt.Errorf("failed to store cash bond: %w", err)
	}
	return &bond, nil
}

func (s *DefaultBookingService) GetBond(ctx context.Context, id string) (*models.CashBond, error) {
	return s.Bonds.GetByID(ctx, id)
}

// TransitionBond applies a bond status change. The write is conditional on the
// status that was read, so a concurrent change surfaces as a stale-bond error.
func (s *DefaultBookingService) TransitionBond(ctx context.Context, id string, to models.BondStatus, claim *payment.Claim) (*models.CashBond, error) {
	current, err := s.Bonds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := payment.TransitionBond(*current, to, claim, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Bonds.UpdateStatus(ctx, &next, current.Status); err != nil {
		return nil, err
	}
	s.logger().Info("Cash bond status changed",
		zap.String("bondID", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)))
	return &next, nil
}
