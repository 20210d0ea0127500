package billing

import "context"

// ProviderCustomer is the provider-agnostic shape of a billing customer.
type ProviderCustomer struct {
	ID    string
	Email string
}

// ProviderProduct is the provider-agnostic shape of a catalog product.
type ProviderProduct struct {
	ID          string
	Active      bool
	Name        string
	Description string
	ImageURL    string
	Metadata    map[string]string
}

// ProviderPrice is the provider-agnostic shape of a catalog price.
type ProviderPrice struct {
	ID              string
	ProductID       string
	Active          bool
	Currency        string
	UnitAmount      *int64
	Interval        string
	IntervalCount   *int64
	TrialPeriodDays *int64
	Metadata        map[string]string
}

// ProviderSubscription is the provider-agnostic shape of a subscription as
// fetched from the billing provider. Epoch fields are Unix seconds; zero
// means absent and must map to NULL locally, never to epoch-zero.
type ProviderSubscription struct {
	ID                 string
	CustomerID         string
	Status             string
	PriceID            string
	Quantity           int64
	CancelAtPeriodEnd  bool
	Created            int64
	CurrentPeriodStart int64
	CurrentPeriodEnd   int64
	EndedAt            int64
	CancelAt           int64
	CanceledAt         int64
	TrialStart         int64
	TrialEnd           int64
	Metadata           map[string]string
}

// Provider is the billing provider consumed by the engine. All calls are
// network RPCs and may fail transiently; callers retry, the engine does not.
type Provider interface {
	CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*ProviderCustomer, error)
	GetSubscription(ctx context.Context, id string) (*ProviderSubscription, error)
	GetPrice(ctx context.Context, id string) (*ProviderPrice, error)
	GetProduct(ctx context.Context, id string) (*ProviderProduct, error)
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
