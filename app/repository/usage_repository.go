package repository

import (
	"github.com/landmark-crm/landmark/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// usageRepository implements the UsageRepository interface
type usageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository instance
func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

// UpsertQuantity overwrites the consumed quantity for one resource line.
// Callers pass the new absolute value; this is not an increment.
func (r *usageRepository) UpsertQuantity(subscriptionID, resourceType string, quantity int64) error {
	item := &models.SubscriptionItem{
		SubscriptionID: subscriptionID,
		ResourceType:   resourceType,
		Quantity:       quantity,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "subscription_id"},
			{Name: "resource_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"quantity",
			"updated_at",
		}),
	}).Create(item).Error
}

// SetLimit overwrites the plan limit for one resource line.
func (r *usageRepository) SetLimit(subscriptionID, resourceType string, limit int64) error {
	item := &models.SubscriptionItem{
		SubscriptionID: subscriptionID,
		ResourceType:   resourceType,
		UnitAmount:     limit,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "subscription_id"},
			{Name: "resource_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"unit_amount",
			"updated_at",
		}),
	}).Create(item).Error
}

// GetBySubscription returns all usage lines for a subscription
func (r *usageRepository) GetBySubscription(subscriptionID string) ([]models.SubscriptionItem, error) {
	var items []models.SubscriptionItem
	err := r.db.Where("subscription_id = ?", subscriptionID).
		Order("resource_type asc").
		Find(&items).Error
	return items, err
}
