package billing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/landmark-crm/landmark/internal/pkg/env"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider sets the global Stripe API key and returns the provider.
func NewStripeProvider(apiKey, webhookSecret string) *StripeProvider {
	stripe.Key = strings.TrimSpace(apiKey)
	return &StripeProvider{webhookSecret: strings.TrimSpace(webhookSecret)}
}

// NewStripeProviderFromEnv builds the provider from STRIPE_SECRET_KEY and
// STRIPE_WEBHOOK_SECRET.
func NewStripeProviderFromEnv() *StripeProvider {
	return NewStripeProvider(
		env.GetEnv("STRIPE_SECRET_KEY", ""),
		env.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
	)
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*ProviderCustomer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	c, err := customer.New(params)
	if err != nil {
		return nil, err
	}
	return &ProviderCustomer{ID: c.ID, Email: c.Email}, nil
}

func (p *StripeProvider) GetSubscription(ctx context.Context, id string) (*ProviderSubscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	s, err := subscription.Get(id, params)
	if err != nil {
		return nil, err
	}
	if s.Items == nil || len(s.Items.Data) == 0 {
		return nil, errors.New("subscription has no items")
	}
	item := s.Items.Data[0]

	out := &ProviderSubscription{
		ID:                 s.ID,
		Status:             string(s.Status),
		Quantity:           item.Quantity,
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		Created:            s.Created,
		CurrentPeriodStart: item.CurrentPeriodStart,
		CurrentPeriodEnd:   item.CurrentPeriodEnd,
		EndedAt:            s.EndedAt,
		CancelAt:           s.CancelAt,
		CanceledAt:         s.CanceledAt,
		TrialStart:         s.TrialStart,
		TrialEnd:           s.TrialEnd,
		Metadata:           s.Metadata,
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if item.Price != nil {
		out.PriceID = item.Price.ID
	}
	return out, nil
}

func (p *StripeProvider) GetPrice(ctx context.Context, id string) (*ProviderPrice, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx

	pr, err := price.Get(id, params)
	if err != nil {
		return nil, err
	}

	out := &ProviderPrice{
		ID:       pr.ID,
		Active:   pr.Active,
		Currency: strings.ToUpper(string(pr.Currency)),
		Metadata: pr.Metadata,
	}
	if pr.Product != nil {
		out.ProductID = pr.Product.ID
	}
	if pr.UnitAmount != 0 {
		amount := pr.UnitAmount
		out.UnitAmount = &amount
	}
	if pr.Recurring != nil {
		out.Interval = string(pr.Recurring.Interval)
		if pr.Recurring.IntervalCount != 0 {
			count := pr.Recurring.IntervalCount
			out.IntervalCount = &count
		}
		if pr.Recurring.TrialPeriodDays != 0 {
			days := pr.Recurring.TrialPeriodDays
			out.TrialPeriodDays = &days
		}
	}
	return out, nil
}

func (p *StripeProvider) GetProduct(ctx context.Context, id string) (*ProviderProduct, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx

	pr, err := product.Get(id, params)
	if err != nil {
		return nil, err
	}

	out := &ProviderProduct{
		ID:          pr.ID,
		Active:      pr.Active,
		Name:        pr.Name,
		Description: pr.Description,
		Metadata:    pr.Metadata,
	}
	if len(pr.Images) > 0 {
		out.ImageURL = pr.Images[0]
	}
	return out, nil
}

// ParsedWebhook is the normalized result of webhook ingestion: enough to
// dedupe, persist and dispatch without the caller touching Stripe types.
type ParsedWebhook struct {
	EventID        string
	EventType      string
	SubscriptionID string
	CustomerID     string
	SignatureValid bool
}

// ParseWebhook verifies the signature header and extracts the event routing
// fields. A failed signature still yields best-effort ids (parsed without
// verification) so the event can be recorded as invalid.
func (p *StripeProvider) ParseWebhook(payload []byte, sigHeader string) (*ParsedWebhook, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		out := parseWebhookUnverified(payload)
		out.SignatureValid = false
		return out, err
	}

	out := &ParsedWebhook{
		EventID:        event.ID,
		EventType:      string(event.Type),
		SignatureValid: true,
	}
	if strings.HasPrefix(string(event.Type), "customer.subscription.") {
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return out, err
		}
		out.SubscriptionID = sub.ID
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
	}
	return out, nil
}

func parseWebhookUnverified(payload []byte) *ParsedWebhook {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	_ = json.Unmarshal(payload, &raw)
	return &ParsedWebhook{EventID: raw.ID, EventType: raw.Type}
}
