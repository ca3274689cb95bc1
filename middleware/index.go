package middleware

import (
	"errors"
	"strings"

	"event_manager/helper"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// AdminOnly sits behind Protected and rejects non-admin claims.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim := helper.GetClaimsFromToken(c)
		if !claim.IsAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Admin access required", errors.New("not admin"))
		}
		return c.Next()
	}
}

// OptionalJWT lets guests through but attaches claims when a valid token is
// present, so bookings can be tied to an account when there is one.
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := helper.ParseToken(tokenString)
		if err != nil || !token.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", token)
		return c.Next()
	}
}
