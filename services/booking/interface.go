package booking

import (
	"context"
	"time"

	bondRepo "eventbook/database/repository/bond"
	catalogRepo "eventbook/database/repository/catalog"
	eventRepo "eventbook/database/repository/event"
	offerRepo "eventbook/database/repository/offer"
	"eventbook/models"
	"eventbook/services/availability"
	"eventbook/services/payment"
	"eventbook/services/pricing"
	"eventbook/services/timeline"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the booking workflow: it fetches data from the stores,
// runs the engine components over it and threads session state between calls.
type BookingService interface {
	ClassifyRange(ctx context.Context, start, end models.Date) (*models.Classification, error)
	QuoteOffers(ctx context.Context, offerIDs []string, guestCount int) (*models.Quote, error)
	SplitPayment(total int64, policy models.Policy) (models.PaymentSplit, error)
	StartDownPayment(ctx context.Context, req DownPaymentRequest) (*DownPaymentResult, error)

	CreateBond(ctx context.Context, bookingRef string, amount int64) (*models.CashBond, error)
	GetBond(ctx context.Context, id string) (*models.CashBond, error)
	TransitionBond(ctx context.Context, id string, to models.BondStatus, claim *payment.Claim) (*models.CashBond, error)

	StartTimeline(ctx context.Context, userID, packageID string, eventDate models.Date) (*models.TimelineView, error)
	GetTimeline(ctx context.Context, userID, sessionID string) (*models.TimelineView, error)
	AddActivity(ctx context.Context, userID, sessionID, afterActivityID string) (*models.TimelineView, error)
	UpdateActivity(ctx context.Context, userID, sessionID, activityID string, patch models.ActivityPatch) (*models.TimelineView, error)
	RemoveActivity(ctx context.Context, userID, sessionID, activityID string) (*models.TimelineView, error)
	ReorderActivities(ctx context.Context, userID, sessionID string, from, to int) (*models.TimelineView, error)
	TransitionActivity(ctx context.Context, userID, sessionID, activityID string, status models.ActivityStatus) (*models.TimelineView, error)
	EndTimeline(ctx context.Context, userID, sessionID string) error
}

// ReminderScheduler queues a reminder for an outstanding balance.
type ReminderScheduler interface {
	ScheduleBalanceReminder(ctx context.Context, payload models.BalanceReminderPayload) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Events   eventRepo.EventRepository
	Catalog  catalogRepo.CatalogRepository
	Offers   offerRepo.OfferRepository
	Bonds    bondRepo.BondRepository
	Sessions SessionStore

	Classifier availability.Classifier
	Scheduler  timeline.Scheduler
	Pricing    pricing.Calculator
	Gateway    payment.Gateway
	Reminders  ReminderScheduler

	BalanceDueDays int
	Currency       string
	Now            func() time.Time
	NewID          func() string
	Logger         *zap.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultBookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
