package validation

import (
	"strings"

	"marketplace/internal/models"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Username string      `json:"username" validate:"required,min=3,max=30"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=customer seller"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	if r.Role == "" {
		r.Role = models.RoleCustomer
	}
}

func (r *RegisterRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required":    "Email is required",
		"email.email":       "Please provide a valid email",
		"username.required": "Username is required",
		"username.min":      "Username must be at least 3 characters",
		"username.max":      "Username cannot exceed 30 characters",
		"password.required": "Password is required",
		"password.min":      "Password must be at least 6 characters",
		"role.oneof":        "Role must be either customer or seller",
	}
}

// LoginRequest is the body of POST /api/auth/login. The password has no
// length rule here, only at registration.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required":    "Email is required",
		"email.email":       "Please provide a valid email",
		"password.required": "Password is required",
	}
}

var productMessages = map[string]string{
	"name.required":        "Product name is required",
	"name.min":             "Product name cannot be empty",
	"name.max":             "Product name cannot exceed 100 characters",
	"description.required": "Description is required",
	"description.min":      "Description cannot be empty",
	"description.max":      "Description cannot exceed 1000 characters",
	"price.required":       "Price is required",
	"price.gte":            "Price must be positive",
	"stock.required":       "Stock is required",
	"stock.gte":            "Stock cannot be negative",
	"category.required":    "Category is required",
	"category.min":         "Category cannot be empty",
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
}

func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

func (r *CreateProductRequest) ValidationMessages() map[string]string {
	return productMessages
}

// UpdateProductRequest is the body of PATCH /api/products/:id. Only the
// fields present in the body are changed.
type UpdateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,min=1,max=1000"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Category    *string   `json:"category" validate:"omitempty,min=1"`
	Tags        *[]string `json:"tags"`
	Image       *string   `json:"image"`
}

func (r *UpdateProductRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		r.Category = &category
	}
}

func (r *UpdateProductRequest) ValidationMessages() map[string]string {
	return productMessages
}

func (r *UpdateProductRequest) Check() []string {
	if r.Name == nil && r.Description == nil && r.Price == nil && r.Stock == nil &&
		r.Category == nil && r.Tags == nil && r.Image == nil {
		return []string{"At least one field must be provided"}
	}
	return nil
}

// OrderItemRequest is one requested line of an order.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest is the body of POST /api/orders. Prices are never taken
// from the client.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"productArray" validate:"required,min=1,dive"`
}

func (r *CreateOrderRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"productArray.required": "At least one product is required",
		"productArray.min":      "At least one product is required",
		"quantity.required":     "Quantity must be at least 1",
		"quantity.min":          "Quantity must be at least 1",
	}
}

// UpdateOrderRequest is the body of PATCH /api/orders/:id.
type UpdateOrderRequest struct {
	Status *string `json:"status" validate:"omitempty,min=1,max=100"`
}

func (r *UpdateOrderRequest) Normalize() {
	if r.Status != nil {
		status := strings.TrimSpace(*r.Status)
		r.Status = &status
	}
}
