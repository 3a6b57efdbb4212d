package services

import (
	"encoding/json"
	"log"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
)

// Routing keys of the order lifecycle events.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
	EventOrderDeleted       = "order.deleted"
)

// EventPublisher sends a message to the broker under routingKey.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderEventItem is one line of an order as carried by an event.
type OrderEventItem struct {
	ProductID uuid.UUID `json:"productId"`
	SellerID  uuid.UUID `json:"sellerId"`
	Quantity  int       `json:"quantity"`
}

// OrderEvent is the payload published on every order lifecycle change.
type OrderEvent struct {
	Type        string           `json:"type"`
	OrderID     uuid.UUID        `json:"orderId"`
	ClientID    uuid.UUID        `json:"clientId"`
	Status      string           `json:"status"`
	TotalAmount float64          `json:"totalAmount"`
	Items       []OrderEventItem `json:"productArray"`
	OccurredAt  time.Time        `json:"occurredAt"`
}

func newOrderEvent(eventType string, order *models.Order) OrderEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
		})
	}
	return OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		ClientID:    order.ClientID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       items,
		OccurredAt:  time.Now().UTC(),
	}
}

// publishOrderEvent is best effort: the order is already committed, so a
// broker failure is only logged.
func publishOrderEvent(publisher EventPublisher, eventType string, order *models.Order) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(newOrderEvent(eventType, order))
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", eventType, order.ID, err)
		return
	}
	if err := publisher.Publish(eventType, body); err != nil {
		log.Printf("Failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
