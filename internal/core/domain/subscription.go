package domain

import (
	"errors"
	"time"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionStatusActive is the billing processor's status token for a
// subscription in good standing. Status is deliberately kept as the raw
// processor string rather than a closed enum.
const SubscriptionStatusActive = "active"

// Subscription is a patient's billing-access snapshot. It is meaningful only
// in association with a patient identity and is replaced wholesale on each
// fetch.
type Subscription struct {
	UserID            string    `json:"user_id"`
	Status            string    `json:"status"`
	PriceID           string    `json:"price_id,omitempty"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
}

// IsActive reports whether the subscription grants access right now.
func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == SubscriptionStatusActive
}
