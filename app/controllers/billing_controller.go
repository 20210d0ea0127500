package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/landmark-crm/landmark/internal/pkg/billing"
)

// BillingController handles the billing provider webhook ingress.
type BillingController struct {
	svc      *billing.Service
	provider *billing.StripeProvider
}

// NewBillingController creates the webhook controller from injected deps.
func NewBillingController(svc *billing.Service, provider *billing.StripeProvider) *BillingController {
	return &BillingController{svc: svc, provider: provider}
}

// HandleStripeWebhook ingests provider webhook deliveries. Deliveries are
// at-least-once, possibly duplicated and out of order; deduplication happens
// on the stored event id and reconciliation is idempotent, so replays are
// safe. Reconciliation failures return 5xx so the provider redelivers.
func (bc *BillingController) HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	parsed, parseErr := bc.provider.ParseWebhook(rawBody, signature)

	created, stored, err := bc.svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		ProviderEventID: parsed.EventID,
		EventType:       parsed.EventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  parsed.SignatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !parsed.SignatureValid {
		_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}
	if parseErr != nil {
		_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}
	if !isSubscriptionEvent(parsed.EventType) {
		_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	isNew := parsed.EventType == "customer.subscription.created"
	reconcileErr := bc.svc.ReconcileSubscription(ctx, parsed.SubscriptionID, parsed.CustomerID, isNew)
	_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, reconcileErr)
	if reconcileErr != nil {
		if errors.Is(reconcileErr, billing.ErrNotFound) {
			// Unknown customer: redelivery will not help, acknowledge.
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "reconciliation_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

func isSubscriptionEvent(eventType string) bool {
	switch eventType {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		return true
	default:
		return false
	}
}
