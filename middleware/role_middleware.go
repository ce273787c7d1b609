package middleware

import (
	"github.com/gofiber/fiber/v2"

	"estatecrm/models"
	"estatecrm/utils"
)

// RequireRoles rejects authenticated requests whose session role is not in
// the allowed set. Must run after Protected.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		if _, ok := allowed[user.Role]; !ok {
			utils.LogEvent("access_denied", map[string]interface{}{
				"user_id":  user.ID,
				"role":     user.Role,
				"endpoint": c.Path(),
			})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You do not have permission to access this resource",
			})
		}

		return c.Next()
	}
}
