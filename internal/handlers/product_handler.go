package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	sellerOnly := middleware.RequireRole(models.RoleSeller)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	// Static segments go before /:id.
	productRoutes.Get("/my/products", auth, sellerOnly, h.HandleMyProducts)
	productRoutes.Get("/slug/:slug", h.HandleGetProductBySlug)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, sellerOnly, validation.Body[validation.CreateProductRequest](h.validate), h.HandleCreateProduct)
	productRoutes.Patch("/:id", auth, sellerOnly, validation.Body[validation.UpdateProductRequest](h.validate), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, sellerOnly, h.HandleDeleteProduct)
}

// HandleListProducts searches the catalogue. Unparsable paging values fall
// back to the defaults.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Query:    c.Query("q"),
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
	}

	products, pagination, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"products":   products,
		"pagination": pagination,
	})
}

// HandleMyProducts lists the products of the authenticated seller.
func (h *ProductHandler) HandleMyProducts(c *fiber.Ctx) error {
	products, err := h.service.ListBySeller(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "product": product})
}

// HandleGetProductBySlug retrieves a single product by its slug.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	product, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "product": product})
}

// HandleCreateProduct creates a product owned by the authenticated seller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req := validation.FromCtx[validation.CreateProductRequest](c)

	product, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req := validation.FromCtx[validation.UpdateProductRequest](c)

	product, err := h.service.Update(c.UserContext(), id, middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
