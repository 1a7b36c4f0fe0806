package handlers

import (
	"errors"
	"time"

	"pawhaven/internal/domain"
	"pawhaven/internal/log"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email, "role": string(u.Role)})
	return c.Redirect(homeFor(u.Role))
}

// homeFor sends each role to its landing page after login.
func homeFor(role domain.Role) string {
	switch role {
	case domain.RoleSitter:
		return "/sitter"
	case domain.RoleSeller:
		return "/seller"
	case domain.RoleAdmin:
		return "/admin"
	default:
		return "/owner"
	}
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	role, roleErr := domain.ParseRole(c.FormValue("role"))

	fail := func(msg string) error {
		return c.Status(400).Render("register", fiber.Map{"Err": msg, "CSRFToken": c.Cookies("csrf_")})
	}
	if !okName || !okEmail {
		return fail("Please check your name and email")
	}
	if !validate.Password(pass) {
		return fail("Password needs 8+ characters with upper, lower and a digit")
	}
	if roleErr != nil || role == domain.RoleAdmin {
		return fail("Choose a valid account type")
	}

	u, err := h.Auth.Register(name, email, pass, role)
	if errors.Is(err, services.ErrEmailTaken) {
		return c.Status(409).Render("register", fiber.Map{"Err": "That email is already registered", "CSRFToken": c.Cookies("csrf_")})
	}
	if err != nil {
		log.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return fail("Could not create the account")
	}

	sid := ensureSID(c)
	if err := h.Auth.Users.BindSession(sid, u.ID); err != nil {
		return c.Redirect("/login")
	}
	log.Audit(c, "auth.register", map[string]any{"user_id": u.ID, "role": string(role)})
	return c.Redirect(homeFor(role))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}

func (h *AuthHandler) ForgotForm(c *fiber.Ctx) error {
	return render(c, "forgot_password", fiber.Map{"Sent": false})
}

// Forgot always renders the same confirmation, whether or not the address
// is known.
func (h *AuthHandler) Forgot(c *fiber.Ctx) error {
	if email, ok := validate.Email(c.FormValue("email")); ok {
		h.Auth.ForgotPassword(email)
	}
	return render(c, "forgot_password", fiber.Map{"Sent": true})
}
