package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
)

// SessionUserID reads the authenticated user id stashed by Protected().
func SessionUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, faults.ErrUnauthenticated
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, faults.ErrUnauthenticated
	}
	return id, nil
}

// SessionEmail reads the authenticated user's email, if the token carried one.
func SessionEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}
