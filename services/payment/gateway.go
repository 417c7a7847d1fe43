package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"eventbook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Gateway creates payment intents for the down payment of a split.
type Gateway interface {
	CreateDownPaymentIntent(ctx context.Context, split models.PaymentSplit, bookingRef string) (*models.DownPaymentIntent, error)
}

// StripeGateway creates Stripe PaymentIntents. stripe.Key must be set before use.
type StripeGateway struct {
	currency   string
	minorUnits int64
	logger     *zap.Logger
}

// NewStripeGateway builds a gateway for currency; minorUnits converts whole
// currency units to Stripe's smallest unit (100 for PHP/USD, 1 for JPY).
func NewStripeGateway(currency string, minorUnits int64, logger *zap.Logger) *StripeGateway {
	if minorUnits <= 0 {
		minorUnits = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeGateway{
		currency:   strings.ToLower(currency),
		minorUnits: minorUnits,
		logger:     logger,
	}
}

func (g *StripeGateway) CreateDownPaymentIntent(ctx context.Context, split models.PaymentSplit, bookingRef string) (*models.DownPaymentIntent, error) {
	if split.DownPayment <= 0 {
		return nil, models.NewValidationError("downPayment", "must be positive to collect, got %d", split.DownPayment)
	}
	if split.DownPayment > math.MaxInt64/g.minorUnits {
		return nil, models.NewValidationError("downPayment", "amount too large")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(split.DownPayment * g.minorUnits),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(fmt.Sprintf("downpayment:%s:%d", bookingRef, split.DownPayment))
	params.AddMetadata("bookingRef", bookingRef)
	params.AddMetadata("policy", string(split.Policy.Kind))
	params.AddMetadata("total", fmt.Sprintf("%d", split.Total))
	params.AddMetadata("balance", fmt.Sprintf("%d", split.Balance))

	pi, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("CreateDownPaymentIntent: stripe call failed",
			zap.String("bookingRef", bookingRef), zap.Error(err))
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Info("Down payment intent created",
		zap.String("bookingRef", bookingRef), zap.String("intentID", pi.ID))
	return &models.DownPaymentIntent{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       split.DownPayment,
		Currency:     g.currency,
		Status:       string(pi.Status),
	}, nil
}
