package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/landmark-crm/landmark/app/models"
	"github.com/landmark-crm/landmark/internal/pkg/events"
)

// ReconcileSubscription pulls authoritative subscription state from the
// billing provider and overwrites the local Subscription row and the derived
// Profile projection. The sequence is strict: catalog upserts, then the
// subscription row, then the projection. Any failure before the subscription
// write aborts with no partial write; a projection failure after a successful
// subscription write must be retried by the caller (at-least-once), which is
// safe because both writes are full-row replacements.
func (s *Service) ReconcileSubscription(ctx context.Context, subscriptionID, customerID string, isNew bool) error {
	if subscriptionID == "" || customerID == "" {
		return ValidationError("subscription_id and customer_id are required")
	}

	binding, err := s.repo.GetCustomerByProviderID(customerID)
	if err != nil {
		if isRecordNotFound(err) {
			return NotFoundError("customer", customerID)
		}
		return err
	}

	sub, err := s.provider.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return ExternalServiceError("get subscription", err)
	}

	userCount := userCountFromMetadata(sub.Metadata)
	extraSeats := additionalUsers(userCount)

	price, err := s.provider.GetPrice(ctx, sub.PriceID)
	if err != nil {
		return ExternalServiceError("get price", err)
	}
	product, err := s.provider.GetProduct(ctx, price.ProductID)
	if err != nil {
		return ExternalServiceError("get product", err)
	}

	// Referential completeness: the price and its product must exist before
	// the subscription row points at them.
	if err := s.UpsertProduct(ctx, product); err != nil {
		return fmt.Errorf("mirror product %q: %w", product.ID, err)
	}
	if err := s.UpsertPrice(ctx, price); err != nil {
		return fmt.Errorf("mirror price %q: %w", price.ID, err)
	}

	row := &models.Subscription{
		ID:                 sub.ID,
		UserID:             binding.UserID,
		Status:             sub.Status,
		PriceID:            sub.PriceID,
		Quantity:           sub.Quantity,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		Created:            epochTime(sub.Created),
		CurrentPeriodStart: epochTime(sub.CurrentPeriodStart),
		CurrentPeriodEnd:   epochTime(sub.CurrentPeriodEnd),
		EndedAt:            epochTimePtr(sub.EndedAt),
		CancelAt:           epochTimePtr(sub.CancelAt),
		CanceledAt:         epochTimePtr(sub.CanceledAt),
		TrialStart:         epochTimePtr(sub.TrialStart),
		TrialEnd:           epochTimePtr(sub.TrialEnd),
		MetadataJSON:       marshalMetadata(sub.Metadata),
	}
	if err := s.repo.UpsertSubscription(row); err != nil {
		return fmt.Errorf("upsert subscription %q: %w", sub.ID, err)
	}

	profile := &models.Profile{
		UserID:                binding.UserID,
		SubscriptionStatus:    sub.Status,
		SubscriptionTier:      tierForSubscription(sub.Metadata, sub.PriceID, s.tiers),
		BillingCycle:          normalizeInterval(price.Interval),
		UserCount:             userCount,
		AdditionalUsers:       extraSeats,
		SubscriptionPeriodEnd: epochTimePtr(sub.CurrentPeriodEnd),
		StripeSubscriptionID:  sub.ID,
	}
	if err := s.repo.UpsertProfile(profile); err != nil {
		// The subscription row is already correct; only the projection is
		// stale. Callers retry until this succeeds.
		return fmt.Errorf("upsert profile for user %d: %w", binding.UserID, err)
	}

	if isNew {
		log.Infof("[Billing] Initial reconciliation of subscription %s for user %d (tier=%q)",
			sub.ID, binding.UserID, profile.SubscriptionTier)
	}

	s.publish(events.Event{
		Kind:           events.KindSubscriptionChanged,
		UserID:         binding.UserID,
		SubscriptionID: sub.ID,
	})
	return nil
}

// epochTime converts provider Unix seconds to the store's date type.
func epochTime(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

// epochTimePtr maps absent epochs to NULL, never to epoch-zero.
func epochTimePtr(v int64) *time.Time {
	if v == 0 {
		return nil
	}
	t := time.Unix(v, 0).UTC()
	return &t
}
