package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ctan76-dev/suckthumb/src/core/config"
	"github.com/ctan76-dev/suckthumb/src/core/helpers"
)

// Protected middleware for validating JWT tokens
func Protected() fiber.Handler {
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not set in the environment variables") // Panic to prevent startup
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(jwtSecret)},
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			// Extract session claims and attach them to the context
			user := c.Locals("user").(*jwt.Token)
			claims := user.Claims.(jwt.MapClaims)
			userID, ok := claims["sub"].(string)
			if !ok || userID == "" {
				return helpers.HandleError(c, fiber.StatusUnauthorized, "User ID missing in token", nil)
			}
			c.Locals("user_id", userID)
			if email, ok := claims["email"].(string); ok {
				c.Locals("user_email", email)
			}
			if avatar, ok := claims["avatar"].(string); ok {
				c.Locals("user_avatar", avatar)
			}
			return c.Next()
		},
	})
}

// jwtError handles JWT-related errors
func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Missing or malformed JWT", err)
	}
	return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired JWT", err)
}
