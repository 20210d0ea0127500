package usage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/landmark-crm/landmark/app/repository"
	"github.com/landmark-crm/landmark/internal/pkg/cache"
	"github.com/landmark-crm/landmark/internal/pkg/events"
)

// Tracker records per-subscription resource consumption and evaluates the
// alert thresholds over it. All writes are absolute overwrites of the
// (subscription, resource) line; last writer wins, callers serialize at the
// call site when rapid successive updates must be ordered.
type Tracker struct {
	repos *repository.Repositories
	bus   *events.Bus
	cache *cache.Client
	wg    sync.WaitGroup
}

// NewTracker creates a usage tracker. Bus and cache are optional: a nil bus
// disables change events, a nil cache disables alert dedupe.
func NewTracker(repos *repository.Repositories, bus *events.Bus, cacheClient *cache.Client) *Tracker {
	return &Tracker{
		repos: repos,
		bus:   bus,
		cache: cacheClient,
	}
}

// RecordUsage overwrites the consumed quantity for one resource of one
// subscription and publishes a UsageRecorded event.
func (t *Tracker) RecordUsage(ctx context.Context, subscriptionID, resourceType string, quantity int64) error {
	_ = ctx
	subscriptionID = strings.TrimSpace(subscriptionID)
	resourceType = strings.TrimSpace(resourceType)
	if subscriptionID == "" || resourceType == "" {
		return fmt.Errorf("subscription_id and resource_type are required")
	}
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	if err := t.repos.Usage.UpsertQuantity(subscriptionID, resourceType, quantity); err != nil {
		return err
	}

	if t.bus != nil {
		t.bus.Publish(events.Event{
			Kind:           events.KindUsageRecorded,
			SubscriptionID: subscriptionID,
			ResourceType:   resourceType,
			Quantity:       quantity,
		})
	}
	return nil
}

// SetLimit overwrites the plan limit for one resource line.
func (t *Tracker) SetLimit(ctx context.Context, subscriptionID, resourceType string, limit int64) error {
	_ = ctx
	subscriptionID = strings.TrimSpace(subscriptionID)
	resourceType = strings.TrimSpace(resourceType)
	if subscriptionID == "" || resourceType == "" {
		return fmt.Errorf("subscription_id and resource_type are required")
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return t.repos.Usage.SetLimit(subscriptionID, resourceType, limit)
}

// AlertsFor loads the subscription's usage lines and evaluates the alert
// thresholds over them.
func (t *Tracker) AlertsFor(ctx context.Context, subscriptionID string) ([]Alert, error) {
	_ = ctx
	items, err := t.repos.Usage.GetBySubscription(subscriptionID)
	if err != nil {
		return nil, err
	}

	usageByResource := make(map[string]int64, len(items))
	limits := make(map[string]int64, len(items))
	for _, item := range items {
		usageByResource[item.ResourceType] = item.Quantity
		if item.UnitAmount > 0 {
			limits[item.ResourceType] = item.UnitAmount
		}
	}

	alerts := EvaluateAlerts(usageByResource, limits)
	for i := range alerts {
		alerts[i].SubscriptionID = subscriptionID
	}
	return alerts, nil
}
