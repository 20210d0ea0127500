package billing

import (
	"errors"
	"time"

	"github.com/landmark-crm/landmark/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing engine.
type Repository interface {
	GetCustomerByUserID(userID uint) (*models.Customer, error)
	GetCustomerByProviderID(providerCustomerID string) (*models.Customer, error)
	CreateCustomer(customer *models.Customer) error
	UpsertProduct(product *models.Product) error
	UpsertPrice(price *models.Price) error
	GetPrice(id string) (*models.Price, error)
	UpsertSubscription(sub *models.Subscription) error
	GetSubscription(id string) (*models.Subscription, error)
	UpsertProfile(profile *models.Profile) error
	GetProfileByUserID(userID uint) (*models.Profile, error)
	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetCustomerByUserID(userID uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) GetCustomerByProviderID(providerCustomerID string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.Where("provider_customer_id = ?", providerCustomerID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) CreateCustomer(customer *models.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ConflictError("customers.user_id", err)
		}
		return err
	}
	return nil
}

func (r *gormRepository) UpsertProduct(product *models.Product) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"active",
			"name",
			"description",
			"image_url",
			"metadata_json",
			"updated_at",
		}),
	}).Create(product).Error
}

func (r *gormRepository) UpsertPrice(price *models.Price) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id",
			"active",
			"currency",
			"unit_amount",
			"interval",
			"interval_count",
			"trial_period_days",
			"metadata_json",
			"updated_at",
		}),
	}).Create(price).Error
}

func (r *gormRepository) GetPrice(id string) (*models.Price, error) {
	var p models.Price
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) UpsertSubscription(sub *models.Subscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"status",
			"price_id",
			"quantity",
			"cancel_at_period_end",
			"created",
			"current_period_start",
			"current_period_end",
			"ended_at",
			"cancel_at",
			"canceled_at",
			"trial_start",
			"trial_end",
			"metadata_json",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure timestamps are populated after upsert.
	return r.db.Where("id = ?", sub.ID).First(sub).Error
}

func (r *gormRepository) GetSubscription(id string) (*models.Subscription, error) {
	var s models.Subscription
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *gormRepository) UpsertProfile(profile *models.Profile) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_status",
			"subscription_tier",
			"billing_cycle",
			"user_count",
			"additional_users",
			"subscription_period_end",
			"stripe_subscription_id",
			"updated_at",
		}),
	}).Create(profile).Error; err != nil {
		return err
	}

	return r.db.Where("user_id = ?", profile.UserID).First(profile).Error
}

func (r *gormRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_event_id"}},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider_event_id = ?", event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
