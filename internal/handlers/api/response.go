package api

import (
	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/models"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// jsonUsage returns a 400 response showing the accepted request shapes.
func jsonUsage(c fiber.Ctx, message string, usage models.Usage) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: message,
		Usage: &usage,
	})
}
