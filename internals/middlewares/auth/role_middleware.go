package middleware

import (
	"github.com/gofiber/fiber/v2"

	"roadmapguide_backend/internals/constants"
	helper "roadmapguide_backend/internals/helpers"
)

// AdminOnly guards the /api/a group. Runs after AuthJWT.
func AdminOnly(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(helper.LocUserRole).(string)
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}
