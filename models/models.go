package models

import "time"

// SessionMode distinguishes the normal collect flow from the short
// feedback flow started by /feedback.
const (
	SessionModeCollect  = "collect"
	SessionModeFeedback = "feedback"
)

// SkipMode says which side of the form is bypassed when the session
// advances. It is set from the payment choice of the previous order.
type SkipMode string

const (
	SkipNone     SkipMode = "none"
	SkipSender   SkipMode = "sender"
	SkipReceiver SkipMode = "receiver"
)

// Session is the per-chat conversation progress. One row per chat.
type Session struct {
	ChatID    int64
	Mode      string
	Step      int
	Skip      SkipMode
	Data      map[string]string
	UserName  string
	CreatedAt time.Time
}

// Order is a finalized delivery order as persisted in the ledger.
type Order struct {
	ID           int64
	OrderID      string // short public id shown to the user
	ChatID       int64
	UserName     string
	Data         map[string]string
	LoyaltyLevel int
	FreeDelivery bool
	Source       string
	CreatedAt    time.Time
}

// OrderSummary is the compact row used by /mydeliveries.
type OrderSummary struct {
	OrderID      string
	Pickup       string
	Dropoff      string
	FreeDelivery bool
	CreatedAt    time.Time
}

// LastOrder caches the reusable fields of the chat's most recent order
// so a reorder can pre-fill the side that did not change.
type LastOrder struct {
	ChatID        int64
	Pickup        string
	SenderPhone   string
	Dropoff       string
	ReceiverPhone string
	Payment       string
}
