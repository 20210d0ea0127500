package models

import "time"

// Product mirrors a billing provider product. Rows are never created locally;
// every catalog sync overwrites the full row keyed by the provider id.
type Product struct {
	ID           string    `gorm:"primaryKey;type:varchar(191)" json:"id" validate:"required"`
	Active       bool      `gorm:"default:true" json:"active"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `gorm:"type:varchar(500);default:''" json:"image_url"`
	MetadataJSON string    `gorm:"type:longtext" json:"metadata_json"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
