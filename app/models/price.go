package models

import "time"

const (
	PriceIntervalDay   = "day"
	PriceIntervalWeek  = "week"
	PriceIntervalMonth = "month"
	PriceIntervalYear  = "year"
)

// Price mirrors a billing provider price. A Subscription row must never point
// at a price id absent from this table, so reconciliation upserts the price
// (and its product) before the subscription.
type Price struct {
	ID              string    `gorm:"primaryKey;type:varchar(191)" json:"id" validate:"required"`
	ProductID       string    `gorm:"type:varchar(191);not null;index" json:"product_id" validate:"required"`
	Active          bool      `gorm:"default:true" json:"active"`
	Currency        string    `gorm:"type:varchar(8);not null" json:"currency" validate:"required,len=3"`
	UnitAmount      *int64    `gorm:"default:null" json:"unit_amount,omitempty"`
	Interval        string    `gorm:"type:varchar(16);default:''" json:"interval"`
	IntervalCount   *int64    `gorm:"default:null" json:"interval_count,omitempty"`
	TrialPeriodDays *int64    `gorm:"default:null" json:"trial_period_days,omitempty"`
	MetadataJSON    string    `gorm:"type:longtext" json:"metadata_json"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
