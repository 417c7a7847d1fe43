package models

import "time"

// PolicyKind names a split policy.
type PolicyKind string

const (
	PolicyFull   PolicyKind = "full"
	PolicyHalf   PolicyKind = "half"
	PolicyCustom PolicyKind = "custom"
)

// Policy converts a total into a down payment. Percentage is only read for
// PolicyCustom.
type Policy struct {
	Kind       PolicyKind `json:"kind" binding:"required"`
	Percentage int        `json:"percentage,omitempty"`
}

func FullPolicy() Policy { return Policy{Kind: PolicyFull} }
func HalfPolicy() Policy { return Policy{Kind: PolicyHalf} }

func CustomPolicy(percentage int) Policy {
	return Policy{Kind: PolicyCustom, Percentage: percentage}
}

// PaymentSplit is a total divided into down payment and balance. Balance is
// always Total - DownPayment.
type PaymentSplit struct {
	Total       int64  `json:"total"`
	Policy      Policy `json:"policy"`
	DownPayment int64  `json:"downPayment"`
	Balance     int64  `json:"balance"`
}

// BondStatus is the lifecycle state of a refundable cash bond.
type BondStatus string

const (
	BondPending  BondStatus = "PENDING"
	BondPaid     BondStatus = "PAID"
	BondRefunded BondStatus = "REFUNDED"
	BondClaimed  BondStatus = "CLAIMED"
)

func (s BondStatus) Terminal() bool {
	return s == BondRefunded || s == BondClaimed
}

// CashBond is a flat refundable deposit attached to a booking's payment
// schedule.
type CashBond struct {
	ID                string     `bson:"id" json:"id"`
	BookingRef        string     `bson:"bookingRef" json:"bookingRef"`
	Amount            int64      `bson:"amount" json:"amount" validate:"gte=0"`
	Status            BondStatus `bson:"status" json:"status"`
	DamageAmount      int64      `bson:"damageAmount,omitempty" json:"damageAmount,omitempty"`
	DamageDescription string     `bson:"damageDescription,omitempty" json:"damageDescription,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DownPaymentIntent is a gateway payment intent created for a split's down
// payment. Amount is in whole currency units.
type DownPaymentIntent struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// BalanceReminderPayload is the queued reminder for an outstanding balance.
type BalanceReminderPayload struct {
	BookingRef string `json:"bookingRef"`
	UserID     string `json:"userId"`
	EventDate  Date   `json:"eventDate"`
	DueDate    Date   `json:"dueDate"`
	Balance    int64  `json:"balance"`
	Currency   string `json:"currency"`
}
