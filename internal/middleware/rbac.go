package middleware

import (
	"go-cra/internal/workflow"
	"go-cra/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route to the given roles. Admin is always allowed
// through: admin tooling subsumes every role's read surface.
func RequireRole(roles ...workflow.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if claims.Role == workflow.RoleAdmin {
			return c.Next()
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: insufficient role",
		})
	}
}

// RequireAdmin gates a route to admins only.
func RequireAdmin() fiber.Handler {
	return RequireRole()
}

// AdminEditMode reports whether the request asks for the admin edit-mode
// escape hatch. The flag is honored only for admin users; the workflow
// authorizer ignores it for everyone else.
func AdminEditMode(c *fiber.Ctx) bool {
	claims := Claims(c)
	if claims == nil || claims.Role != workflow.RoleAdmin {
		return false
	}
	return c.Get("X-Admin-Edit-Mode") == "true" || c.Query("editMode") == "true"
}
