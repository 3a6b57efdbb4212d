package validation

import (
	"marketplace/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

const bodyKey = "validated_body"

// Body parses the request body into a T, validates it and stores it for
// the next handlers. Retrieve it with FromCtx.
func Body[T any](v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return apperror.NewBadRequest("Invalid request body", err)
		}
		if err := v.Struct(req); err != nil {
			return err
		}
		c.Locals(bodyKey, req)
		return c.Next()
	}
}

// FromCtx returns the body validated by Body[T], or nil when there is none.
func FromCtx[T any](c *fiber.Ctx) *T {
	req, _ := c.Locals(bodyKey).(*T)
	return req
}
