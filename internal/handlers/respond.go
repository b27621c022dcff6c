package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unexpected store errors are logged, never echoed to the caller.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidation(err):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		return respondError(c, fiber.StatusConflict, err.Error())
	}
	slog.Error("unexpected service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return respondError(c, fiber.StatusInternalServerError, "Internal server error")
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func respondUnauthorized(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusBadRequest, message)
}
