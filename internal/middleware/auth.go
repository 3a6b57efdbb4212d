package middleware

import (
	"context"
	"strings"

	"marketplace/internal/apperror"
	"marketplace/internal/authz"
	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

// TokenResolver turns a bearer token into the user it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// authenticated user is stored for the next handlers, see CurrentUser.
func AuthRequired(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Expected format: "Bearer <token>"
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			return apperror.NewUnauthenticated()
		}

		user, err := resolver.ResolveToken(c.UserContext(), tokenString)
		if err != nil {
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequireRole rejects the request unless the authenticated user has role.
// It must run after AuthRequired.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.RequireRole(CurrentUser(c), role); err != nil {
			return err
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
