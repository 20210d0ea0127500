package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/landmark-crm/landmark/app/models"
	"github.com/landmark-crm/landmark/internal/pkg/metrics/counter"
	"github.com/landmark-crm/landmark/internal/pkg/usage"
)

// UsageController exposes the usage tracker over HTTP.
type UsageController struct {
	tracker *usage.Tracker
	counter *counter.Counter
}

// NewUsageController creates the usage controller. The counter is optional;
// without it the increment endpoint is rejected.
func NewUsageController(tracker *usage.Tracker, usageCounter *counter.Counter) *UsageController {
	return &UsageController{tracker: tracker, counter: usageCounter}
}

type usageRequest struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceType   string `json:"resource_type"`
	Quantity       int64  `json:"quantity"`
}

type limitRequest struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceType   string `json:"resource_type"`
	Limit          int64  `json:"limit"`
}

// HandleRecordUsage overwrites the consumed quantity for one resource line.
func (uc *UsageController) HandleRecordUsage(c *fiber.Ctx) error {
	var req usageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}

	if err := uc.tracker.RecordUsage(c.Context(), req.SubscriptionID, req.ResourceType, req.Quantity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"subscription_id": req.SubscriptionID,
		"resource_type":   req.ResourceType,
		"quantity":        req.Quantity,
	})
}

// HandleSetLimit overwrites the plan limit for one resource line.
func (uc *UsageController) HandleSetLimit(c *fiber.Ctx) error {
	var req limitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}

	if err := uc.tracker.SetLimit(c.Context(), req.SubscriptionID, req.ResourceType, req.Limit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"subscription_id": req.SubscriptionID,
		"resource_type":   req.ResourceType,
		"limit":           req.Limit,
	})
}

type incrementRequest struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceType   string `json:"resource_type"`
	Delta          int64  `json:"delta"`
}

// HandleIncrementUsage buffers a usage delta in the counter. High-frequency
// producers use this instead of the absolute overwrite; deltas are drained to
// the usage lines in batches.
func (uc *UsageController) HandleIncrementUsage(c *fiber.Ctx) error {
	if uc.counter == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "counter_unavailable"})
	}

	var req incrementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if strings.TrimSpace(req.SubscriptionID) == "" || strings.TrimSpace(req.ResourceType) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "subscription_id and resource_type are required"})
	}
	// Only tracked types are drained; anything else would sit in the
	// counter buffer forever.
	if !models.IsKnownResource(req.ResourceType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_resource_type"})
	}
	if req.Delta <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "delta must be positive"})
	}

	if err := uc.counter.Add(req.SubscriptionID, req.ResourceType, req.Delta); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record increment"})
	}
	return c.JSON(fiber.Map{
		"subscription_id": req.SubscriptionID,
		"resource_type":   req.ResourceType,
		"delta":           req.Delta,
	})
}

// HandleGetAlerts evaluates the alert thresholds for a subscription.
func (uc *UsageController) HandleGetAlerts(c *fiber.Ctx) error {
	subscriptionID := strings.TrimSpace(c.Params("subscriptionID"))
	if subscriptionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "subscription_id is required"})
	}

	alerts, err := uc.tracker.AlertsFor(c.Context(), subscriptionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load usage"})
	}
	return c.JSON(fiber.Map{
		"subscription_id": subscriptionID,
		"alerts":          alerts,
	})
}
