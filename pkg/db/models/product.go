package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is the canonical catalog listing. Prices live in paise;
// display strings are produced at the API boundary only.
type Product struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Slug                string         `gorm:"column:slug;uniqueIndex;not null"`
	Name                string         `gorm:"column:name;not null"`
	Brand               string         `gorm:"column:brand;not null"`
	Category            string         `gorm:"column:category;not null;index"`
	Weight              string         `gorm:"column:weight;not null"`
	PricePaise          int64          `gorm:"column:price_paise;not null"`
	CompareAtPricePaise *int64         `gorm:"column:compare_at_price_paise"`
	DeliveryEstimate    string         `gorm:"column:delivery_estimate;not null"`
	Description         *string        `gorm:"column:description"`
	BrandLogoURL        *string        `gorm:"column:brand_logo_url"`
	Tags                pq.StringArray `gorm:"column:tags;type:text[]"`
	Images              pq.StringArray `gorm:"column:images;type:text[]"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
