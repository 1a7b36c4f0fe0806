package handlers

import (
	"pawhaven/internal/domain"
	applog "pawhaven/internal/log"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler is the moderation surface: sitter verification and removal
// of users, pets and products.
type AdminHandler struct {
	Users    *repos.UserRepo
	Sitters  *repos.SitterRepo
	Pets     *repos.PetRepo
	Prods    *repos.ProductRepo
	Bookings *repos.BookingRepo
	Notify   services.Notifier
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	bookings, _ := h.Bookings.ListAll()
	return render(c, "admin_dashboard", fiber.Map{"Users": users, "Bookings": bookings})
}

// GET /admin/sitters — all sitters, pending verification first in the UI.
func (h *AdminHandler) SittersPage(c *fiber.Ctx) error {
	sitters, err := h.Sitters.List()
	if err != nil {
		applog.Error(c, "admin.sitters.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load sitters"})
	}
	return render(c, "admin_sitters", fiber.Map{"Sitters": sitters})
}

// GET /admin/sitters/:id — verification docs for review.
func (h *AdminHandler) SitterProfile(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Sitter not found"})
	}
	sitter, err := h.Sitters.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Sitter not found"})
	}
	return render(c, "admin_sitter_profile", fiber.Map{"Sitter": sitter})
}

// POST /admin/sitters/:id/verify — approve or reject; the sitter hears
// about the decision.
func (h *AdminHandler) VerifySitter(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID || (status != domain.VerifyApproved && status != domain.VerifyRejected) {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Sitters.SetVerification(id, status); err != nil {
		applog.Error(c, "admin.sitters.verify.fail", err, map[string]any{"sitter_id": id})
		return c.Status(400).SendString("could not update sitter")
	}
	h.Notify.Notify(id, "Verification "+status, "An administrator reviewed your sitter profile: "+status+".")
	applog.Audit(c, "admin.sitters.verify", map[string]any{"sitter_id": id, "status": status})
	return c.Redirect("/admin/sitters")
}

// POST /admin/users/:id/delete — removes the account and everything it
// owns; past orders stay behind as canceled rows.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Users.DeleteCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin")
}

// POST /admin/pets/:id/delete
func (h *AdminHandler) DeletePet(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	pet, err := h.Pets.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Pet not found"})
	}
	if err := h.Pets.Delete(id, pet.OwnerID); err != nil {
		applog.Error(c, "admin.pets.delete.fail", err, map[string]any{"pet_id": id})
		return c.Status(400).SendString("could not delete pet")
	}
	applog.Audit(c, "admin.pets.delete", map[string]any{"pet_id": id})
	return c.Redirect("/admin")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Prods.DeleteCascade(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin")
}
