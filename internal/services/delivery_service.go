package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"marketplace/internal/apperror"
	"marketplace/internal/authz"
	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/google/uuid"
)

// DeliveryService keeps per-seller delivery records in step with order events.
type DeliveryService struct {
	repo repositories.DeliveryRepository
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(repo repositories.DeliveryRepository) *DeliveryService {
	return &DeliveryService{repo: repo}
}

// HandleOrderEvent applies one order event. It is safe to call again with an
// event that was already applied.
func (s *DeliveryService) HandleOrderEvent(ctx context.Context, body []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// A malformed message will never succeed; drop it.
		log.Printf("Discarding malformed order event: %v", err)
		return nil
	}

	switch event.Type {
	case EventOrderCreated:
		return s.createDeliveries(ctx, &event)
	case EventOrderDeleted:
		if err := s.repo.DeleteByOrder(ctx, event.OrderID); err != nil {
			return fmt.Errorf("failed to delete deliveries of order %s: %w", event.OrderID, err)
		}
		return nil
	default:
		return nil
	}
}

func (s *DeliveryService) createDeliveries(ctx context.Context, event *OrderEvent) error {
	bySeller := make(map[uuid.UUID]*models.Delivery)
	var sellers []uuid.UUID
	for _, item := range event.Items {
		delivery, ok := bySeller[item.SellerID]
		if !ok {
			delivery = &models.Delivery{OrderID: event.OrderID, SellerID: item.SellerID, Pending: true}
			bySeller[item.SellerID] = delivery
			sellers = append(sellers, item.SellerID)
		}
		delivery.Items = append(delivery.Items, models.DeliveryItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	for _, sellerID := range sellers {
		err := s.repo.Create(ctx, bySeller[sellerID])
		if errors.Is(err, repositories.ErrDuplicate) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create delivery for order %s: %w", event.OrderID, err)
		}
	}
	log.Printf("Recorded %d deliveries for order %s", len(sellers), event.OrderID)
	return nil
}

// ListMine returns the deliveries assigned to seller.
func (s *DeliveryService) ListMine(ctx context.Context, seller *models.User) ([]models.Delivery, error) {
	deliveries, err := s.repo.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list deliveries", err)
	}
	return deliveries, nil
}

// MarkShipped closes one of the caller's deliveries.
func (s *DeliveryService) MarkShipped(ctx context.Context, id uuid.UUID, caller *models.User) (*models.Delivery, error) {
	delivery, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, deliveryLookupError(err)
	}
	if err := authz.RequireOwnership(caller, delivery.SellerID, "update", "delivery"); err != nil {
		return nil, err
	}
	if err := s.repo.MarkShipped(ctx, id); err != nil {
		return nil, deliveryLookupError(err)
	}
	delivery.Pending = false
	return delivery, nil
}

func deliveryLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NewNotFound("Delivery not found", err)
	}
	return apperror.NewInternal("failed to access delivery", err)
}
