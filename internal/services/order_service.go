package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"marketplace/internal/apperror"
	"marketplace/internal/authz"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/google/uuid"
)

// OrderResult is the envelope every order operation answers with. The
// handler writes it as-is with StatusCode as the HTTP status.
type OrderResult struct {
	Error      bool        `json:"error"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"statusCode"`
}

func orderSuccess(statusCode int, message string, data interface{}) *OrderResult {
	return &OrderResult{Message: message, Data: data, StatusCode: statusCode}
}

// OrderFailure wraps err in a failed OrderResult. Internal causes are logged
// and replaced by a generic message.
func OrderFailure(err error) *OrderResult {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.Internal {
		log.Printf("Order operation failed: %v", err)
	}
	return &OrderResult{Error: true, Message: appErr.PublicMessage(), StatusCode: appErr.StatusCode()}
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	// statusBySeller moves status updates from the ordering client to the
	// sellers of the ordered items.
	statusBySeller bool
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are emitted.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher, statusBySeller bool) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		publisher:      publisher,
		statusBySeller: statusBySeller,
	}
}

// StatusBySeller reports which role may update an order's status.
func (s *OrderService) StatusBySeller() bool {
	return s.statusBySeller
}

// Create places an order for client. Prices are read from the catalogue and
// stock is reserved in the same transaction as the insert.
func (s *OrderService) Create(ctx context.Context, client *models.User, req *validation.CreateOrderRequest) *OrderResult {
	order := &models.Order{
		ClientID: client.ID,
		Status:   models.DefaultOrderStatus,
		Items:    make([]models.OrderItem, 0, len(req.Items)),
	}

	for _, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return OrderFailure(apperror.NewInvalidID(err))
		}
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return OrderFailure(apperror.NewNotFound(fmt.Sprintf("Product %s not found", productID), err))
			}
			return OrderFailure(apperror.NewInternal("failed to load product", err))
		}
		if product.Stock < line.Quantity {
			return OrderFailure(apperror.NewBadRequest(fmt.Sprintf(
				"Insufficient stock for product %s. Available: %d, requested: %d",
				product.Name, product.Stock, line.Quantity), nil))
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID:    product.ID,
			SellerID:     product.SellerID,
			Quantity:     line.Quantity,
			PriceAtOrder: product.Price,
		})
		order.TotalAmount += product.Price * float64(line.Quantity)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return OrderFailure(apperror.NewBadRequest("Insufficient stock for one or more products", err))
		}
		return OrderFailure(apperror.NewInternal("failed to create order", err))
	}

	publishOrderEvent(s.publisher, EventOrderCreated, order)
	return orderSuccess(http.StatusCreated, "Order created successfully", order)
}

// GetAll returns every order.
func (s *OrderService) GetAll(ctx context.Context) *OrderResult {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return OrderFailure(apperror.NewInternal("failed to list orders", err))
	}
	return orderSuccess(http.StatusOK, "Orders retrieved successfully", orders)
}

// GetByClient returns the orders placed by clientID.
func (s *OrderService) GetByClient(ctx context.Context, clientID uuid.UUID) *OrderResult {
	orders, err := s.orderRepo.GetByClient(ctx, clientID)
	if err != nil {
		return OrderFailure(apperror.NewInternal("failed to list client orders", err))
	}
	return orderSuccess(http.StatusOK, "Orders retrieved successfully", orders)
}

// GetByID returns one of the caller's orders.
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID, caller *models.User) *OrderResult {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderFailure(err)
	}
	if err := authz.RequireOwnership(caller, order.ClientID, "access", "order"); err != nil {
		return OrderFailure(err)
	}
	return orderSuccess(http.StatusOK, "Order retrieved successfully", order)
}

// Update changes the status of an order. A request without a status leaves
// the order untouched.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, caller *models.User, req *validation.UpdateOrderRequest) *OrderResult {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderFailure(err)
	}
	if err := s.canUpdateStatus(caller, order); err != nil {
		return OrderFailure(err)
	}

	if req.Status == nil {
		return orderSuccess(http.StatusOK, "Order updated successfully", order)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, *req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return OrderFailure(apperror.NewNotFound("Order not found", err))
		}
		return OrderFailure(apperror.NewInternal("failed to update order", err))
	}

	updated, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderFailure(err)
	}
	publishOrderEvent(s.publisher, EventOrderStatusUpdated, updated)
	return orderSuccess(http.StatusOK, "Order updated successfully", updated)
}

// Delete removes one of the caller's orders. Reserved stock is not restored.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID, caller *models.User) *OrderResult {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderFailure(err)
	}
	if err := authz.RequireOwnership(caller, order.ClientID, "delete", "order"); err != nil {
		return OrderFailure(err)
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return OrderFailure(apperror.NewNotFound("Order not found", err))
		}
		return OrderFailure(apperror.NewInternal("failed to delete order", err))
	}

	publishOrderEvent(s.publisher, EventOrderDeleted, order)
	return orderSuccess(http.StatusOK, "Order deleted successfully", nil)
}

func (s *OrderService) canUpdateStatus(caller *models.User, order *models.Order) error {
	if !s.statusBySeller {
		return authz.RequireOwnership(caller, order.ClientID, "update", "order")
	}
	if err := authz.RequireRole(caller, models.RoleSeller); err != nil {
		return err
	}
	if !order.HasSeller(caller.ID) {
		return apperror.NewForbidden("Not authorized to update this order")
	}
	return nil
}

func (s *OrderService) loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("Order not found", err)
		}
		return nil, apperror.NewInternal("failed to load order", err)
	}
	return order, nil
}
