package ports

import (
	"context"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// SubscriptionProvider reads the billing-access snapshot for a user.
type SubscriptionProvider interface {
	FetchByUserID(ctx context.Context, userID string) (*domain.Subscription, error)
}

// SubscriptionRepository persists subscription records kept in sync by
// billing webhook events.
type SubscriptionRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Subscription, error)
	Upsert(ctx context.Context, sub *domain.Subscription) error
	// Cancel marks the user's subscription canceled without deleting the record.
	Cancel(ctx context.Context, userID string) error
}

// CheckoutProvider creates a hosted checkout session with the payment
// processor and returns the URL the client should be redirected to.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, userID, priceID string) (string, error)
}

// Billing event types accepted from the payment processor webhook.
const (
	BillingEventSubscriptionCreated = "customer.subscription.created"
	BillingEventSubscriptionUpdated = "customer.subscription.updated"
	BillingEventSubscriptionDeleted = "customer.subscription.deleted"
)

// BillingEventInput is a single subscription lifecycle event received from
// the payment processor.
type BillingEventInput struct {
	EventID           string
	Type              string
	UserID            string
	Status            string
	PriceID           string
	CurrentPeriodEnd  int64 // unix seconds, as sent by the processor
	CancelAtPeriodEnd bool
}

// BillingService applies billing events to the subscription store.
type BillingService interface {
	Process(ctx context.Context, in BillingEventInput) error
}
