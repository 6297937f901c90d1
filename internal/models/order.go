package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusCompleted OrderStatus = "completed"
)

// Order is a replenishment request a retailer places with the hub.
// Retailer coordinates are denormalized onto the row so the pooling
// engine can cluster a snapshot of pending orders without joins.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RetailerID  string      `gorm:"not null;index" json:"retailer_id"`
	RetailerLat float64     `json:"retailer_lat"`
	RetailerLon float64     `json:"retailer_lon"`
	ProductID   string      `gorm:"not null" json:"product_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	UnitPrice   float64     `gorm:"not null" json:"unit_price"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
