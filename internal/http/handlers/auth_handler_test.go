package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"pawhaven/internal/config"
	"pawhaven/internal/domain"
	"pawhaven/internal/http/handlers"
	"pawhaven/internal/repos"
)

// testApp wires the auth surface plus one guarded group per role, against
// an in-memory database with the standard seed accounts.
func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()})

	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	owner := app.Group("/owner", handlers.RequireRole(deps.Auth, domain.RoleOwner))
	owner.Get("/pets", deps.PetHandler.List)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/", deps.AdminHandler.Dashboard)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}

func postForm(path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

// login signs in a seeded account and returns its sid cookie.
func login(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(postForm("/login", url.Values{
		"email":    {email},
		"password": {"Passw0rd!"},
	}))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want 302 after login, got %d", resp.StatusCode)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			return ck
		}
	}
	t.Fatalf("no sid cookie set on login")
	return nil
}

func TestLogin_RedirectsByRole(t *testing.T) {
	app := testApp(t)

	cases := []struct{ email, home string }{
		{"olivia@pawhaven.test", "/owner"},
		{"sam@pawhaven.test", "/sitter"},
		{"serena@pawhaven.test", "/seller"},
		{"admin@pawhaven.test", "/admin"},
	}
	for _, tc := range cases {
		resp, err := app.Test(postForm("/login", url.Values{
			"email":    {tc.email},
			"password": {"Passw0rd!"},
		}))
		if err != nil {
			t.Fatalf("%s: %v", tc.email, err)
		}
		if resp.StatusCode != fiber.StatusFound {
			t.Fatalf("%s: want 302, got %d", tc.email, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != tc.home {
			t.Fatalf("%s: want redirect to %s, got %s", tc.email, tc.home, loc)
		}
	}
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(postForm("/login", url.Values{
		"email":    {"olivia@pawhaven.test"},
		"password": {"nope"},
	}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid email or password") {
		t.Fatalf("login page should carry a friendly notice, got: %s", body)
	}
}

func TestAdminGuard(t *testing.T) {
	app := testApp(t)

	// Anonymous: sent to login.
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous /admin should redirect to /login, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	// Signed in as owner: denied, not redirected.
	ownerSID := login(t, app, "olivia@pawhaven.test")
	req := httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(ownerSID)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("owner on /admin: want 403, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Access denied") {
		t.Fatalf("denied page should say so, got: %s", body)
	}

	// Signed in as admin: through.
	adminSID := login(t, app, "admin@pawhaven.test")
	req = httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(adminSID)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin on /admin: want 200, got %d", resp.StatusCode)
	}
}

func TestRoleScopedAccess(t *testing.T) {
	app := testApp(t)

	sitterSID := login(t, app, "sam@pawhaven.test")
	req := httptest.NewRequest("GET", "/owner/pets", nil)
	req.AddCookie(sitterSID)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("sitter on /owner/pets: want 403, got %d", resp.StatusCode)
	}

	ownerSID := login(t, app, "olivia@pawhaven.test")
	req = httptest.NewRequest("GET", "/owner/pets", nil)
	req.AddCookie(ownerSID)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("owner on /owner/pets: want 200, got %d", resp.StatusCode)
	}
}

func TestLogout_EndsSession(t *testing.T) {
	app := testApp(t)

	sid := login(t, app, "olivia@pawhaven.test")
	resp, err := app.Test(postForm("/logout", url.Values{}, sid))
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want 302 after logout, got %d", resp.StatusCode)
	}

	// The old sid no longer resolves to anyone.
	req := httptest.NewRequest("GET", "/owner/pets", nil)
	req.AddCookie(sid)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("stale sid should redirect to /login, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestNotFound_FriendlyPage(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/no-such-page", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Page not found") {
		t.Fatalf("404 should render the friendly page, got: %s", body)
	}
}
