package server

import (
	"context"
	"errors"
	"strings"

	"playto/internal/middleware"
	"playto/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// guestCookie is the session cookie carrying the guest identity seed.
const guestCookie = "playto_session"

// ResolveActor returns middleware that guarantees c.Locals("userID") holds
// a stable actor for the request: the authenticated user when a valid
// bearer token was seen by OptionalAuth, otherwise a guest account minted
// from the session cookie. The same cookie always resolves to the same
// guest user. Resolution failure is surfaced as 503, never silently
// attributed to a wrong identity.
func (s *Server) ResolveActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid := c.Locals("userID"); uid != nil {
			return c.Next()
		}

		session := c.Cookies(guestCookie)
		if session == "" {
			session = strings.ReplaceAll(uuid.NewString(), "-", "")
			c.Cookie(&fiber.Cookie{
				Name:     guestCookie,
				Value:    session,
				HTTPOnly: true,
				SameSite: "Lax",
				MaxAge:   30 * 24 * 60 * 60,
			})
		}

		prefix := session
		if len(prefix) > 6 {
			prefix = prefix[:6]
		}

		user, err := s.userRepo.GetOrCreateByUsername(c.Context(), models.GuestPrefix+prefix)
		if err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "guest identity resolution failed",
				"error", err.Error())
			return models.RespondWithAppError(c, models.NewIdentityUnavailableError(err))
		}

		c.Locals("userID", user.ID)
		c.Locals("isGuest", true)
		// Sync to UserContext for logging in downstream services.
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID))
		return c.Next()
	}
}

// actorID returns the resolved actor set by ResolveActor.
func actorID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// optionalUserID returns the authenticated user's ID, or zero for an
// anonymous viewer.
func optionalUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
