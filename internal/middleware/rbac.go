package middleware

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/service/visibility"
)

// RequireRole admits the request only when the user's role row and account are both active.
func RequireRole(role domain.UserRole) fiber.Handler {
	return RequireAnyRole(role)
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := RequireUser(c)
		if err != nil {
			return err
		}

		for _, role := range roles {
			if visibility.ActorHasRole(user, role) {
				return c.Next()
			}
		}
		return domain.ErrForbidden
	}
}
