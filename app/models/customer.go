package models

import "time"

// Customer stores the durable one-to-one mapping between a local user and the
// billing provider's customer object. Created exactly once per user; the
// unique indexes are what make concurrent first-time resolution safe.
type Customer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;uniqueIndex:ux_customers_user" json:"user_id"`
	ProviderCustomerID string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_customers_provider" json:"provider_customer_id"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
