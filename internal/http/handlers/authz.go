package handlers

import (
	"pawhaven/internal/domain"
	applog "pawhaven/internal/log"
	"pawhaven/internal/services"

	"github.com/gofiber/fiber/v2"
)

// sessionUser resolves the sid cookie to a user, or nil.
func sessionUser(c *fiber.Ctx, auth *services.AuthService) *domain.User {
	sid := c.Cookies("sid")
	if sid == "" {
		return nil
	}
	u, err := auth.CurrentUser(sid)
	if err != nil {
		return nil
	}
	return u
}

// RequireUser enforces a live session and stores the user in request locals.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := sessionUser(c, auth)
		if u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireRole enforces a live session with one of the given roles.
func RequireRole(auth *services.AuthService, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := sessionUser(c, auth)
		if u == nil {
			return c.Redirect("/login")
		}
		for _, r := range roles {
			if u.Role == r {
				c.Locals("user", u)
				return c.Next()
			}
		}
		applog.Security(c, "access.denied.role", map[string]any{"user_id": u.ID, "role": string(u.Role)})
		return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return RequireRole(auth, domain.RoleAdmin)
}

// currentUser pulls the user a Require* middleware stored for this request.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
