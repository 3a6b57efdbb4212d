package repositories

import (
	"context"

	"marketplace/internal/models"

	"github.com/google/uuid"
)

// DeliveryRepository defines the interface for delivery data access.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *models.Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Delivery, error)
	MarkShipped(ctx context.Context, id uuid.UUID) error
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) error
}
