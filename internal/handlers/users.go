package handlers

import (
	"net/http"

	"memories-backend/internal/models"
	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RegisterHandler creates the account and logs it straight in.
func RegisterHandler(users *services.UserService, sessions *services.SessionService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		user, err := users.Register(c.Context(), req)
		if err != nil {
			return errorResponse(c, log, err)
		}

		session, err := sessions.Create(c.Context(), user.ID)
		if err != nil {
			return errorResponse(c, log, err)
		}
		c.Cookie(sessionCookie(session.Token, sessions.TTL()))

		return c.Status(http.StatusCreated).JSON(user)
	}
}

func LoginHandler(users *services.UserService, sessions *services.SessionService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		user, err := users.Login(c.Context(), req)
		if err != nil {
			return errorResponse(c, log, err)
		}

		session, err := sessions.Create(c.Context(), user.ID)
		if err != nil {
			return errorResponse(c, log, err)
		}
		c.Cookie(sessionCookie(session.Token, sessions.TTL()))

		return c.JSON(user)
	}
}

// LogoutHandler revokes the session record and clears the cookie.
func LogoutHandler(sessions *services.SessionService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(SessionCookie).(string)
		if token != "" {
			if err := sessions.Delete(c.Context(), token); err != nil {
				return errorResponse(c, log, err)
			}
		}
		c.Cookie(expiredSessionCookie())
		return c.SendStatus(http.StatusNoContent)
	}
}

// MeHandler returns the authenticated user's profile.
func MeHandler(users *services.UserService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return errorResponse(c, log, err)
		}
		return c.JSON(user)
	}
}
