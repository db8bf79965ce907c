package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"medrating/internal/services"
)

// fail maps service errors onto the wire convention: every non-2xx response
// carries a human-readable "detail" the bot shows to the end user.
func fail(c *fiber.Ctx, err error, notFoundDetail, conflictDetail string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": validationErr.Detail})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": notFoundDetail})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": conflictDetail})
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Внутренняя ошибка сервера"})
	}
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": detail})
}
