package middleware

import (
	"github.com/gofiber/fiber/v2"

	"certportal/stores"
)

// RequireAdmin returns a middleware that loads the authenticated user and
// rejects anyone without the admin role. The loaded account is stored in
// the context so handlers can reach the admin's signature path without a
// second lookup.
func RequireAdmin(accounts stores.AccountStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		user, err := accounts.FindByID(userID)
		if err != nil {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if user == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if user.Role != "admin" {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		}

		c.Locals("adminUser", user)
		return c.Next()
	}
}
