package middleware

import (
	"strings"

	"touragency/internal/adapters/persistence/models"
	"touragency/internal/pkg/jwt"
	"touragency/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Protected creates the bearer-token authorization gate. It verifies
// signature, issuer, audience and expiry (zero clock-skew) and stashes
// the identity claims in the request locals.
func Protected(issuer *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return response.Unauthorized(c)
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			return response.Unauthorized(c)
		}

		userID, err := claims.UserID()
		if err != nil {
			return response.Unauthorized(c)
		}

		c.Locals("userID", userID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RequireRole creates role-based authorization middleware
func RequireRole(allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleStr, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c)
		}

		role, err := models.ParseRole(roleStr)
		if err != nil {
			return response.Unauthorized(c)
		}

		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the Admin role
func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
