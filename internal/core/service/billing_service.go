package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// DedupChecker abstracts the webhook idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type billingService struct {
	subscriptions ports.SubscriptionRepository
	dedup         DedupChecker
	log           zerolog.Logger
}

// NewBillingService returns a BillingService implementation.
func NewBillingService(subscriptions ports.SubscriptionRepository, dedup DedupChecker, log zerolog.Logger) ports.BillingService {
	return &billingService{subscriptions: subscriptions, dedup: dedup, log: log}
}

// Process applies a single billing event to the subscription store. Webhook
// deliveries may repeat, so events are deduplicated by event id before any
// write.
func (s *billingService) Process(ctx context.Context, in ports.BillingEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.EventID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", in.EventID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", in.EventID).Str("type", in.Type).Msg("duplicate billing event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, in.EventID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", in.EventID).Msg("failed to set dedup key")
	}

	switch in.Type {
	case ports.BillingEventSubscriptionCreated, ports.BillingEventSubscriptionUpdated:
		sub := &domain.Subscription{
			UserID:            in.UserID,
			Status:            in.Status,
			PriceID:           in.PriceID,
			CurrentPeriodEnd:  time.Unix(in.CurrentPeriodEnd, 0).UTC(),
			CancelAtPeriodEnd: in.CancelAtPeriodEnd,
		}
		if err := s.subscriptions.Upsert(ctx, sub); err != nil {
			return fmt.Errorf("process billing event: upsert: %w", err)
		}

	case ports.BillingEventSubscriptionDeleted:
		if err := s.subscriptions.Cancel(ctx, in.UserID); err != nil {
			return fmt.Errorf("process billing event: cancel: %w", err)
		}

	default:
		// Unknown types are acknowledged and dropped so the processor does not
		// retry them forever.
		s.log.Debug().Str("type", in.Type).Msg("ignoring unhandled billing event type")
		return nil
	}

	s.log.Info().
		Str("event_id", in.EventID).
		Str("type", in.Type).
		Str("user_id", in.UserID).
		Msg("billing event processed")
	return nil
}
