package handlers

import (
	"errors"
	"net/http"
	"time"

	"memories-backend/internal/common"
	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// SessionMiddleware resolves the session cookie to a user id before any
// protected route runs. The user id ends up in c.Locals("user_id"). Only a
// missing or stale cookie yields a 401; a lookup failure in the store is a
// server error and must not log the client out.
func SessionMiddleware(sessions *services.SessionService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}

		session, err := sessions.Get(c.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrNotAuthenticated) {
				// Stale cookie; clear it so the client stops sending it.
				c.Cookie(expiredSessionCookie())
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
			}
			return errorResponse(c, log, err)
		}

		c.Locals("user_id", session.UserID)
		c.Locals(SessionCookie, token)
		return c.Next()
	}
}

func sessionCookie(token string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func expiredSessionCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
