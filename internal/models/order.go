package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultOrderStatus is the status of a freshly placed order.
const DefaultOrderStatus = "awaiting shipment"

// OrderItem represents a single item within an order.
type OrderItem struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	OrderID      uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	SellerID     uuid.UUID `json:"sellerId" gorm:"type:uuid;not null;index"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	PriceAtOrder float64   `json:"priceAtOrder" gorm:"not null"` // Price at the time of order
}

// Order represents a customer order. ClientID is a plain identifier, not a
// foreign key to users.
type Order struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID   `json:"clientId" gorm:"type:uuid;not null;index"`
	Status      string      `json:"status" gorm:"type:varchar(100);not null"`
	Items       []OrderItem `json:"productArray" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// HasSeller reports whether any line item of the order was sold by sellerID.
func (o *Order) HasSeller(sellerID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}
