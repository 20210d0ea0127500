package repository

import (
	"github.com/landmark-crm/landmark/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// SubscriptionRepository defines read access to mirrored subscriptions.
// Writes go through the billing engine exclusively.
type SubscriptionRepository interface {
	GetByID(id string) (*models.Subscription, error)
	GetByUserID(userID uint) ([]models.Subscription, error)
}

// UsageRepository defines the interface for subscription usage line items
type UsageRepository interface {
	UpsertQuantity(subscriptionID, resourceType string, quantity int64) error
	SetLimit(subscriptionID, resourceType string, limit int64) error
	GetBySubscription(subscriptionID string) ([]models.SubscriptionItem, error)
}

// NotificationRepository defines the interface for user notifications
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetUnreadByUser(userID uint) ([]models.Notification, error)
	MarkAsRead(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Subscription SubscriptionRepository
	Usage        UsageRepository
	Notification NotificationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Usage:        NewUsageRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
