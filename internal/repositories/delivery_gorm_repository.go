package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDeliveryRepository is a GORM implementation of DeliveryRepository.
type GORMDeliveryRepository struct {
	db *gorm.DB
}

// NewGORMDeliveryRepository creates a new instance of GORMDeliveryRepository.
func NewGORMDeliveryRepository(db *gorm.DB) *GORMDeliveryRepository {
	return &GORMDeliveryRepository{db: db}
}

// Create stores a delivery. A second delivery for the same order and seller
// is rejected with ErrDuplicate.
func (r *GORMDeliveryRepository) Create(ctx context.Context, delivery *models.Delivery) error {
	if delivery.ID == uuid.Nil {
		delivery.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("delivery of order %s for seller %s: %w", delivery.OrderID, delivery.SellerID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create delivery: %w", err)
	}
	return nil
}

func (r *GORMDeliveryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.WithContext(ctx).First(&delivery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("delivery with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get delivery by ID %s: %w", id, err)
	}
	return &delivery, nil
}

func (r *GORMDeliveryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Delivery, error) {
	deliveries := []models.Delivery{}
	if err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&deliveries).Error; err != nil {
		return nil, fmt.Errorf("failed to list deliveries of seller %s: %w", sellerID, err)
	}
	return deliveries, nil
}

func (r *GORMDeliveryRepository) MarkShipped(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Delivery{}).Where("id = ?", id).
		Updates(map[string]interface{}{"pending": false, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to mark delivery %s shipped: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMDeliveryRepository) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.Delivery{}).Error; err != nil {
		return fmt.Errorf("failed to delete deliveries of order %s: %w", orderID, err)
	}
	return nil
}
