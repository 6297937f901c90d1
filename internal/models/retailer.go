package models

import "time"

// Retailer is a shop served by the hub. Rows are owned by the user
// directory; the pooling engine only ever reads them.
type Retailer struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Location     string    `json:"location"`
	Lat          float64   `gorm:"not null" json:"lat"`
	Lon          float64   `gorm:"not null" json:"lon"`
	CurrentStock int       `gorm:"default:0" json:"current_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
