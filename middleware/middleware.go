package middleware

import (
	"errors"
	"strings"

	"attendance/domain"

	"github.com/gofiber/fiber/v2"
)

// extract token from "Authorization: Bearer ..." or the session cookie
func extractToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return strings.TrimSpace(c.Cookies("session_token"))
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get("Accept"), "text/html")
}

// AuthRequired verifies the session with the identity provider and resolves
// the internal user row. A missing session and a session whose identity was
// never provisioned locally both count as unauthenticated; browser requests
// get redirected to /register instead of a bare 401.
func AuthRequired(provider domain.IdentityProvider, users domain.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unauthenticated := func(message string) error {
			if wantsHTML(c) {
				return c.Redirect("/register", fiber.StatusSeeOther)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		}

		externalID, err := provider.VerifySession(c.Context(), extractToken(c))
		if err != nil {
			return unauthenticated("Unauthorized")
		}

		user, err := users.FindUserByExternalID(c.Context(), externalID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Identity exists upstream but was never provisioned here.
				return unauthenticated("User not provisioned")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to resolve user",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RoleRequired gates a route on the resolved user's role. Runs after
// AuthRequired; an insufficient role is Forbidden, never Unauthorized.
func RoleRequired(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*domain.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied",
		})
	}
}
