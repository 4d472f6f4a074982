package middleware

import (
	"errors"
	"strings"

	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/config"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/pkg/jwt"
	"county-workhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware creates authentication middleware. The token's user is
// loaded on every request so a deleted account loses access immediately.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Token may outlive the account
		user, err := userRepo.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NotFound(c, "User not found")
			}
			return response.InternalServerError(c, "Failed to load user")
		}

		// 6. Set user info in context
		c.Locals("userID", user.ID)
		c.Locals("email", user.Email)
		c.Locals("fullName", user.FullName)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireRoles creates role-based authorization middleware
func RequireRoles(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if role.In(allowedRoles...) {
			return c.Next()
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// SupervisorOrAdmin middleware allows supervisor or admin roles
func SupervisorOrAdmin() fiber.Handler {
	return RequireRoles(domain.RoleSupervisor, domain.RoleAdmin)
}
