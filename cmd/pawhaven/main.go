package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"pawhaven/internal/config"
	"pawhaven/internal/domain"
	"pawhaven/internal/http/handlers"
	applog "pawhaven/internal/log"
	"pawhaven/internal/repos"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Uploads are images only; keep request bodies small.
	app.Server().MaxRequestBodySize = 5 << 20

	deps := handlers.NewDeps(db, cfg)
	authSvc := deps.Auth

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		log.Printf("[warn] could not create media dir %s: %v", mediaDir, err)
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- Public pages ----------
	app.Get("/", func(c *fiber.Ctx) error {
		if u, ok := c.Locals("user").(*domain.User); ok {
			switch u.Role {
			case domain.RoleSitter:
				return c.Redirect("/sitter")
			case domain.RoleSeller:
				return c.Redirect("/seller")
			case domain.RoleAdmin:
				return c.Redirect("/admin")
			default:
				return c.Redirect("/owner")
			}
		}
		return c.Render("index", fiber.Map{})
	})

	// Auth (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Get("/register", deps.AuthHandler.RegisterForm)
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Get("/forgot-password", deps.AuthHandler.ForgotForm)
	app.Post("/forgot-password", deps.AuthHandler.Forgot)

	// ---------- Owner ----------
	owner := app.Group("/owner", handlers.RequireRole(authSvc, domain.RoleOwner))
	owner.Get("/", deps.OwnerHandler.Home)
	owner.Get("/pets", deps.PetHandler.List)
	owner.Post("/pets", deps.PetHandler.Create)
	owner.Post("/pets/:id", deps.PetHandler.Update)
	owner.Post("/pets/:id/delete", deps.PetHandler.Delete)
	owner.Get("/sitters", deps.OwnerHandler.FindSitters)
	owner.Get("/sitters/:id", deps.OwnerHandler.SitterProfile)
	owner.Post("/sitters/:id/book", deps.OwnerHandler.Book)
	owner.Post("/sitters/:id/review", deps.OwnerHandler.ReviewSitter)
	owner.Get("/bookings", deps.OwnerHandler.MyBookings)

	// ---------- Sitter ----------
	sitter := app.Group("/sitter", handlers.RequireRole(authSvc, domain.RoleSitter))
	sitter.Get("/", deps.SitterHandler.Home)
	sitter.Post("/bookings/:id/status", deps.SitterHandler.SetBookingStatus)
	sitter.Get("/availability", deps.SitterHandler.Availability)
	sitter.Post("/availability", deps.SitterHandler.AddAvailability)
	sitter.Post("/availability/:id/delete", deps.SitterHandler.RemoveAvailability)
	sitter.Get("/pricing", deps.SitterHandler.Pricing)
	sitter.Post("/pricing", deps.SitterHandler.AddPricing)
	sitter.Post("/pricing/:id/delete", deps.SitterHandler.RemovePricing)
	sitter.Get("/profile", deps.SitterHandler.Profile)
	sitter.Post("/profile", deps.SitterHandler.UpdateProfile)
	sitter.Get("/reviews", deps.SitterHandler.MyReviews)

	// ---------- Shop & cart (any signed-in user) ----------
	shop := app.Group("/shop", handlers.RequireUser(authSvc))
	shop.Get("/", deps.ShopHandler.Storefront)
	shop.Get("/orders", deps.ShopHandler.MyOrders)
	shop.Get("/products/:id", deps.ShopHandler.Detail)
	shop.Post("/products/:id/order", deps.ShopHandler.PlaceOrder)
	shop.Post("/products/:id/review", deps.ShopHandler.ReviewProduct)

	cart := app.Group("/cart", handlers.RequireUser(authSvc))
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Post("/remove", deps.CartHandler.Remove)
	cart.Post("/checkout", deps.CartHandler.Checkout)

	// ---------- Seller ----------
	seller := app.Group("/seller", handlers.RequireRole(authSvc, domain.RoleSeller))
	seller.Get("/", deps.SellerHandler.Dashboard)
	seller.Get("/products", deps.SellerHandler.Products)
	seller.Post("/products", deps.SellerHandler.AddProduct)
	seller.Post("/products/:id", deps.SellerHandler.UpdateProduct)
	seller.Post("/products/:id/delete", deps.SellerHandler.DeleteProduct)
	seller.Get("/orders", deps.SellerHandler.OrdersPage)
	seller.Post("/orders/:id/status", deps.SellerHandler.AdvanceOrder)
	seller.Get("/campaigns", deps.SellerHandler.Campaigns)
	seller.Post("/campaigns", deps.SellerHandler.AddCampaign)
	seller.Post("/campaigns/:id", deps.SellerHandler.UpdateCampaign)
	seller.Post("/campaigns/:id/delete", deps.SellerHandler.DeleteCampaign)
	seller.Get("/reviews", deps.SellerHandler.ReviewsPage)

	// ---------- Community & playdates ----------
	community := app.Group("/community", handlers.RequireUser(authSvc))
	community.Get("/", deps.CommunityHandler.Board)
	community.Post("/report", deps.CommunityHandler.Report)
	community.Post("/:id/found", deps.CommunityHandler.MarkFound)
	community.Post("/:id/sighting", deps.CommunityHandler.ReportSighting)
	community.Get("/:id/sightings", deps.CommunityHandler.Sightings)

	playdates := app.Group("/playdates", handlers.RequireRole(authSvc, domain.RoleOwner))
	playdates.Get("/", deps.PlaydateHandler.List)
	playdates.Post("/", deps.PlaydateHandler.Invite)
	playdates.Post("/:id/respond", deps.PlaydateHandler.Respond)
	playdates.Post("/:id/cancel", deps.PlaydateHandler.Cancel)

	// ---------- Admin ----------
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/sitters", deps.AdminHandler.SittersPage)
	admin.Get("/sitters/:id", deps.AdminHandler.SitterProfile)
	admin.Post("/sitters/:id/verify", deps.AdminHandler.VerifySitter)
	admin.Post("/users/:id/delete", deps.AdminHandler.DeleteUser)
	admin.Post("/pets/:id/delete", deps.AdminHandler.DeletePet)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
