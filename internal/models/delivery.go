package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryItem is a product quantity a seller has to ship.
type DeliveryItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// Delivery groups the items of one order that a single seller must ship.
type Delivery struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID      `json:"orderId" gorm:"type:uuid;not null;uniqueIndex:idx_delivery_order_seller"`
	SellerID  uuid.UUID      `json:"sellerId" gorm:"type:uuid;not null;uniqueIndex:idx_delivery_order_seller"`
	Pending   bool           `json:"pending" gorm:"not null"`
	Items     []DeliveryItem `json:"productArray" gorm:"serializer:json;type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
