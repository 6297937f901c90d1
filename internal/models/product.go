package models

import "time"

// Product is a catalog entry retailers order against. The hub treats
// its own stock as unlimited; ReorderLevel is the per-shop threshold
// the dashboards use when suggesting a restock.
type Product struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Category     string    `json:"category"`
	UnitPrice    float64   `gorm:"not null" json:"unit_price"`
	ReorderLevel int       `gorm:"default:10" json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
