package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
	"github.com/seu-repo/translog/internal/service/auth"
)

func AuthRequired(service ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, fiber.StatusUnauthorized, "missing authorization header", nil)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, fiber.StatusUnauthorized, "invalid authorization header format", nil)
		}

		user, err := service.ValidateToken(c.Context(), parts[1])
		if err != nil {
			return response.Error(c, fiber.StatusUnauthorized, "invalid or expired token", nil)
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthRequired.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals("user").(*domain.User)
	return user
}

// RequirePermission gates a route on the centralized policy.
func RequirePermission(policy *auth.Policy, resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Error(c, fiber.StatusUnauthorized, "not authenticated", nil)
		}
		if !policy.Allow(user.Role, resource, action) {
			return response.Error(c, fiber.StatusForbidden,
				"role "+string(user.Role)+" may not "+action+" "+resource, nil)
		}
		return c.Next()
	}
}

// RequireRole gates a route on an explicit role list.
func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Error(c, fiber.StatusUnauthorized, "not authenticated", nil)
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return response.Error(c, fiber.StatusForbidden,
			"role "+string(user.Role)+" is not allowed", nil)
	}
}
