package handlers

import (
	"errors"
	"fmt"
	"log"

	"marketplace/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorHandler turns every error returned by a handler or middleware into
// the {success:false, message} response body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	appErr := apperror.From(err)
	if appErr.Kind == apperror.Internal {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	}

	body := fiber.Map{
		"success": false,
		"message": appErr.PublicMessage(),
	}
	if len(appErr.Details) > 0 {
		body["errors"] = appErr.Details
	}
	return c.Status(appErr.StatusCode()).JSON(body)
}

// NotFound answers every request no route matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": fmt.Sprintf("Route %s not found", c.OriginalURL()),
	})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NewInvalidID(err)
	}
	return id, nil
}
