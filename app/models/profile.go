package models

import "time"

// Profile is the derived authorization projection for a user. It is never
// patched in place: reconciliation regenerates the whole row so that partial
// interleavings cannot mix two source events. An empty SubscriptionTier means
// the subscription's price is unmapped; authorization callers must treat that
// as the most restrictive tier.
type Profile struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	UserID                uint       `gorm:"not null;uniqueIndex:ux_profiles_user" json:"user_id"`
	SubscriptionStatus    string     `gorm:"type:varchar(32);default:''" json:"subscription_status"`
	SubscriptionTier      string     `gorm:"type:varchar(50);default:''" json:"subscription_tier"`
	BillingCycle          string     `gorm:"type:varchar(16);default:''" json:"billing_cycle"`
	UserCount             int64      `gorm:"not null;default:1" json:"user_count"`
	AdditionalUsers       int64      `gorm:"not null;default:0" json:"additional_users"`
	SubscriptionPeriodEnd *time.Time `gorm:"type:timestamp;default:null" json:"subscription_period_end,omitempty"`
	StripeSubscriptionID  string     `gorm:"type:varchar(191);default:''" json:"stripe_subscription_id"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasTier reports whether the projection resolved to a known tier.
func (p *Profile) HasTier() bool {
	return p != nil && p.SubscriptionTier != ""
}
