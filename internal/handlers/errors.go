package handlers

import (
	"errors"
	"net/http"

	"memories-backend/internal/common"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// errorResponse maps service errors onto HTTP statuses. Caller-attributable
// errors keep their message; anything else is logged and hidden behind a
// generic payload.
func errorResponse(c *fiber.Ctx, log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, common.ErrEmailTaken):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrNotAuthenticated):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, common.ErrMemoryNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
