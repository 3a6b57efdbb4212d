package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DeliveryHandler handles HTTP requests for seller deliveries.
type DeliveryHandler struct {
	service *services.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(service *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: service}
}

// RegisterRoutes registers the delivery routes with the Fiber app.
func (h *DeliveryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	deliveryRoutes := router.Group("/deliveries", auth, middleware.RequireRole(models.RoleSeller))
	deliveryRoutes.Get("/my", h.HandleMyDeliveries)
	deliveryRoutes.Patch("/:id/shipped", h.HandleMarkShipped)
}

// HandleMyDeliveries lists the deliveries of the authenticated seller.
func (h *DeliveryHandler) HandleMyDeliveries(c *fiber.Ctx) error {
	deliveries, err := h.service.ListMine(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"deliveries": deliveries,
	})
}

// HandleMarkShipped marks a delivery as shipped.
func (h *DeliveryHandler) HandleMarkShipped(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	delivery, err := h.service.MarkShipped(c.UserContext(), id, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Delivery marked as shipped",
		"delivery": delivery,
	})
}
