package models

import "time"

// Resource types tracked per subscription line item.
const (
	ResourceContacts  = "contacts"
	ResourceListings  = "listings"
	ResourceDocuments = "documents"
	ResourceEmails    = "emails"
)

// KnownResourceTypes lists every resource type the usage endpoints accept.
// The counter drain only flushes these, so an unlisted type would strand
// buffered deltas.
var KnownResourceTypes = []string{
	ResourceContacts,
	ResourceListings,
	ResourceDocuments,
	ResourceEmails,
}

// IsKnownResource reports whether the resource type is tracked.
func IsKnownResource(resourceType string) bool {
	for _, r := range KnownResourceTypes {
		if r == resourceType {
			return true
		}
	}
	return false
}

// SubscriptionItem is a usage line for one resource of one subscription.
// Quantity is the consumed amount (absolute, last-writer-wins) and UnitAmount
// is the plan limit the alerting thresholds are computed against.
type SubscriptionItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SubscriptionID string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_subscription_items_sub_resource,priority:1" json:"subscription_id"`
	ResourceType   string    `gorm:"type:varchar(50);not null;uniqueIndex:ux_subscription_items_sub_resource,priority:2" json:"resource_type"`
	Quantity       int64     `gorm:"not null;default:0" json:"quantity"`
	UnitAmount     int64     `gorm:"not null;default:0" json:"unit_amount"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
