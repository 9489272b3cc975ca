package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/service/auth"
)

const UserContextKey = "user"

// AuthRequired verifies the bearer token and loads the user with its role rows.
// Deactivated accounts are rejected here so no handler sees them.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return domain.ErrMissingToken
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return domain.ErrInvalidToken
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return domain.ErrInvalidToken
			}
			return err
		}
		if !user.IsActive {
			return domain.ErrInactiveActor
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// RequireUser is GetCurrentUser for handlers mounted behind AuthRequired.
func RequireUser(c *fiber.Ctx) (*domain.User, error) {
	user := GetCurrentUser(c)
	if user == nil {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}
