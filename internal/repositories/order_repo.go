package repositories

import (
	"context"

	"marketplace/internal/models"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByClient(ctx context.Context, clientID uuid.UUID) ([]models.Order, error)
	// Create stores the order and reserves the stock of its items atomically.
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
