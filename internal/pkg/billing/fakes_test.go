package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/landmark-crm/landmark/app/models"
)

// In-memory repository with the same not-found and conflict semantics as the
// GORM implementation.
type fakeRepository struct {
	mu            sync.Mutex
	customers     map[uint]*models.Customer
	products      map[string]*models.Product
	prices        map[string]*models.Price
	subscriptions map[string]*models.Subscription
	profiles      map[uint]*models.Profile
	webhookEvents map[string]*models.WebhookEvent
	nextID        uint

	failUpsertProfile bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		customers:     make(map[uint]*models.Customer),
		products:      make(map[string]*models.Product),
		prices:        make(map[string]*models.Price),
		subscriptions: make(map[string]*models.Subscription),
		profiles:      make(map[uint]*models.Profile),
		webhookEvents: make(map[string]*models.WebhookEvent),
	}
}

func (r *fakeRepository) GetCustomerByUserID(userID uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[userID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) GetCustomerByProviderID(providerCustomerID string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.ProviderCustomerID == providerCustomerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) CreateCustomer(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[customer.UserID]; exists {
		return ConflictError("customers.user_id", fmt.Errorf("duplicate user %d", customer.UserID))
	}
	r.nextID++
	customer.ID = r.nextID
	cp := *customer
	r.customers[customer.UserID] = &cp
	return nil
}

func (r *fakeRepository) UpsertProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeRepository) UpsertPrice(price *models.Price) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *price
	r.prices[price.ID] = &cp
	return nil
}

func (r *fakeRepository) GetPrice(id string) (*models.Price, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.prices[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) UpsertSubscription(sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.subscriptions[sub.ID] = &cp
	return nil
}

func (r *fakeRepository) GetSubscription(id string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subscriptions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) UpsertProfile(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsertProfile {
		return fmt.Errorf("profile store unavailable")
	}
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		r.nextID++
		profile.ID = r.nextID
	}
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, exists := r.webhookEvents[event.ProviderEventID]; exists {
		cp := *stored
		return false, &cp, nil
	}
	r.nextID++
	event.ID = r.nextID
	cp := *event
	r.webhookEvents[event.ProviderEventID] = &cp
	stored := cp
	return true, &stored, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.webhookEvents {
		if ev.ID == id {
			now := time.Now()
			ev.ProcessedAt = &now
			ev.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// Scripted provider. Unset entities fail the lookup.
type fakeProvider struct {
	mu            sync.Mutex
	customers     map[string]*ProviderCustomer
	subscriptions map[string]*ProviderSubscription
	prices        map[string]*ProviderPrice
	products      map[string]*ProviderProduct

	createCalls      int
	failCreate       bool
	nextCustomerID   string
	lastCreateEmail  string
	lastCreateLabels map[string]string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		customers:      make(map[string]*ProviderCustomer),
		subscriptions:  make(map[string]*ProviderSubscription),
		prices:         make(map[string]*ProviderPrice),
		products:       make(map[string]*ProviderProduct),
		nextCustomerID: "cus_fake_1",
	}
}

func (p *fakeProvider) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*ProviderCustomer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createCalls++
	p.lastCreateEmail = email
	p.lastCreateLabels = metadata
	if p.failCreate {
		return nil, fmt.Errorf("provider unavailable")
	}
	c := &ProviderCustomer{ID: p.nextCustomerID, Email: email}
	p.customers[c.ID] = c
	return c, nil
}

func (p *fakeProvider) GetSubscription(ctx context.Context, id string) (*ProviderSubscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.subscriptions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, fmt.Errorf("no such subscription: %s", id)
}

func (p *fakeProvider) GetPrice(ctx context.Context, id string) (*ProviderPrice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pr, ok := p.prices[id]; ok {
		cp := *pr
		return &cp, nil
	}
	return nil, fmt.Errorf("no such price: %s", id)
}

func (p *fakeProvider) GetProduct(ctx context.Context, id string) (*ProviderProduct, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pd, ok := p.products[id]; ok {
		cp := *pd
		return &cp, nil
	}
	return nil, fmt.Errorf("no such product: %s", id)
}
