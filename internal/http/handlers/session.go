package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopadmin/internal/catalog"
)

const sidCookie = "sid"

// visitor returns the caller's session.
func visitor(c *fiber.Ctx, sessions *catalog.Sessions) *catalog.Session {
	return sessions.Get(visitorID(c))
}

// visitorID returns the caller's sid, issuing a fresh cookie when the request
// carries none or a malformed one.
func visitorID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}
