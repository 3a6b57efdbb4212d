package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. Every response is the
// services.OrderResult envelope.
type OrderHandler struct {
	service           *services.OrderService
	validate          *validation.Validator
	listRequiresAdmin bool
}

// NewOrderHandler creates a new OrderHandler. When listRequiresAdmin is set,
// listing every order is reserved to admins.
func NewOrderHandler(service *services.OrderService, validate *validation.Validator, listRequiresAdmin bool) *OrderHandler {
	return &OrderHandler{
		service:           service,
		validate:          validate,
		listRequiresAdmin: listRequiresAdmin,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	customerOnly := middleware.RequireRole(models.RoleCustomer)
	statusRole := customerOnly
	if h.service.StatusBySeller() {
		statusRole = middleware.RequireRole(models.RoleSeller)
	}

	orderRoutes := router.Group("/orders")
	if h.listRequiresAdmin {
		orderRoutes.Get("/", auth, middleware.RequireRole(models.RoleAdmin), h.HandleGetOrders)
	} else {
		orderRoutes.Get("/", h.HandleGetOrders)
	}
	orderRoutes.Get("/my-orders", auth, customerOnly, h.HandleGetMyOrders)
	orderRoutes.Get("/:id", auth, customerOnly, h.HandleGetOrderByID)
	orderRoutes.Post("/", auth, customerOnly, validation.Body[validation.CreateOrderRequest](h.validate), h.HandleCreateOrder)
	orderRoutes.Patch("/:id", auth, statusRole, validation.Body[validation.UpdateOrderRequest](h.validate), h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", auth, customerOnly, h.HandleDeleteOrder)
}

func respond(c *fiber.Ctx, result *services.OrderResult) error {
	return c.Status(result.StatusCode).JSON(result)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	return respond(c, h.service.GetAll(c.UserContext()))
}

// HandleGetMyOrders retrieves the orders of the authenticated customer.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	return respond(c, h.service.GetByClient(c.UserContext(), middleware.CurrentUser(c).ID))
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond(c, services.OrderFailure(err))
	}
	return respond(c, h.service.GetByID(c.UserContext(), id, middleware.CurrentUser(c)))
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	req := validation.FromCtx[validation.CreateOrderRequest](c)
	return respond(c, h.service.Create(c.UserContext(), middleware.CurrentUser(c), req))
}

// HandleUpdateOrder updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond(c, services.OrderFailure(err))
	}
	req := validation.FromCtx[validation.UpdateOrderRequest](c)
	return respond(c, h.service.Update(c.UserContext(), id, middleware.CurrentUser(c), req))
}

// HandleDeleteOrder deletes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond(c, services.OrderFailure(err))
	}
	return respond(c, h.service.Delete(c.UserContext(), id, middleware.CurrentUser(c)))
}
