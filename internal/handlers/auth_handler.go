package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validation.Validator
	limiter     fiber.Handler
}

// NewAuthHandler creates a new AuthHandler. limiter guards the credential
// endpoints.
func NewAuthHandler(authService *services.AuthService, validate *validation.Validator, limiter fiber.Handler) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
		limiter:     limiter,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.limiter, validation.Body[validation.RegisterRequest](h.validate), h.HandleRegister)
	authRoutes.Post("/login", h.limiter, validation.Body[validation.LoginRequest](h.validate), h.HandleLogin)
	authRoutes.Get("/me", auth, h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	req := validation.FromCtx[validation.RegisterRequest](c)

	user, token, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Summary(),
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	req := validation.FromCtx[validation.LoginRequest](c)

	user, token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"user":    middleware.CurrentUser(c),
	})
}
