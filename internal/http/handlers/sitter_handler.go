package handlers

import (
	"errors"
	"strconv"

	"pawhaven/internal/domain"
	applog "pawhaven/internal/log"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SitterHandler struct {
	Bookings *services.BookingService
	Reviews  *services.ReviewService
	Sitters  *repos.SitterRepo
	MediaDir string
}

// GET /sitter — incoming requests plus the current schedule.
func (h *SitterHandler) Home(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Bookings.SitterBookings(u.ID)
	if err != nil {
		applog.Error(c, "sitter.home.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load bookings"})
	}
	profile, _ := h.Sitters.Get(u.ID)
	return render(c, "sitter_home", fiber.Map{"Bookings": rows, "Profile": profile})
}

// POST /sitter/bookings/:id/status
func (h *SitterHandler) SetBookingStatus(c *fiber.Ctx) error {
	u := currentUser(c)
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID {
		return c.Status(400).SendString("invalid input")
	}
	err := h.Bookings.SetStatus(id, u.ID, status)
	if errors.Is(err, services.ErrBadTransition) {
		return c.Status(400).SendString("invalid status change")
	}
	if err != nil {
		applog.Error(c, "sitter.booking.status.fail", err, map[string]any{"booking_id": id})
		return c.Status(400).SendString("could not update booking")
	}
	applog.Audit(c, "sitter.booking.status", map[string]any{"booking_id": id, "status": status})
	return c.Redirect("/sitter")
}

// GET /sitter/availability
func (h *SitterHandler) Availability(c *fiber.Ctx) error {
	u := currentUser(c)
	slots, err := h.Bookings.SitterSlots(u.ID)
	if err != nil {
		applog.Error(c, "sitter.availability.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load availability"})
	}
	return render(c, "sitter_availability", fiber.Map{"Slots": slots})
}

// POST /sitter/availability
func (h *SitterHandler) AddAvailability(c *fiber.Ctx) error {
	u := currentUser(c)
	a, err := h.Bookings.AddAvailability(u.ID,
		c.FormValue("date"), c.FormValue("start_time"), c.FormValue("end_time"), c.FormValue("notes"))
	if errors.Is(err, services.ErrBadInterval) {
		return c.Status(400).SendString("invalid time window")
	}
	if err != nil {
		applog.Error(c, "sitter.availability.add.fail", err, nil)
		return c.Status(400).SendString("could not add availability")
	}
	applog.Audit(c, "sitter.availability.add", map[string]any{"availability_id": a.ID})
	return c.Redirect("/sitter/availability")
}

// POST /sitter/availability/:id/delete
func (h *SitterHandler) RemoveAvailability(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Bookings.RemoveAvailability(id, u.ID); err != nil {
		applog.Error(c, "sitter.availability.delete.fail", err, map[string]any{"availability_id": id})
		return c.Status(400).SendString("could not delete availability")
	}
	applog.Audit(c, "sitter.availability.delete", map[string]any{"availability_id": id})
	return c.Redirect("/sitter/availability")
}

// GET /sitter/pricing
func (h *SitterHandler) Pricing(c *fiber.Ctx) error {
	u := currentUser(c)
	rules, err := h.Sitters.ListPricing(u.ID)
	if err != nil {
		applog.Error(c, "sitter.pricing.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load pricing"})
	}
	return render(c, "sitter_pricing", fiber.Map{"Rules": rules})
}

// POST /sitter/pricing
func (h *SitterHandler) AddPricing(c *fiber.Ctx) error {
	u := currentUser(c)
	price, okPrice := validate.Price(c.FormValue("price"))
	duration, _ := strconv.Atoi(c.FormValue("duration"))
	service := c.FormValue("service_name")
	if !okPrice || service == "" || duration < 0 {
		return c.Status(400).SendString("invalid input")
	}
	rule := &domain.PricingRule{
		ID:           uuid.NewString(),
		SitterID:     u.ID,
		ServiceName:  service,
		PetSize:      c.FormValue("pet_size"),
		Duration:     duration,
		SpecialNeeds: c.FormValue("special_needs"),
		Price:        price,
	}
	if err := h.Sitters.AddPricing(rule); err != nil {
		applog.Error(c, "sitter.pricing.add.fail", err, nil)
		return c.Status(400).SendString("could not add pricing rule")
	}
	applog.Audit(c, "sitter.pricing.add", map[string]any{"rule_id": rule.ID})
	return c.Redirect("/sitter/pricing")
}

// POST /sitter/pricing/:id/delete
func (h *SitterHandler) RemovePricing(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Sitters.DeletePricing(id, u.ID); err != nil {
		applog.Error(c, "sitter.pricing.delete.fail", err, map[string]any{"rule_id": id})
		return c.Status(400).SendString("could not delete pricing rule")
	}
	applog.Audit(c, "sitter.pricing.delete", map[string]any{"rule_id": id})
	return c.Redirect("/sitter/pricing")
}

// GET /sitter/profile
func (h *SitterHandler) Profile(c *fiber.Ctx) error {
	u := currentUser(c)
	profile, err := h.Sitters.Get(u.ID)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Profile not found"})
	}
	return render(c, "sitter_edit_profile", fiber.Map{"Profile": profile})
}

// POST /sitter/profile — verification docs reset the profile to pending
// until an admin reviews them again.
func (h *SitterHandler) UpdateProfile(c *fiber.Ctx) error {
	u := currentUser(c)
	profile, err := h.Sitters.Get(u.ID)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Profile not found"})
	}
	if phone, ok := validate.Phone(c.FormValue("phone")); ok {
		profile.Phone = phone
	}
	if st := c.FormValue("service_types"); st != "" {
		profile.ServiceTypes = st
	}
	if img := saveUpload(c, "profile_image", h.MediaDir); img != "" {
		profile.ProfileImage = img
	}
	docsChanged := false
	if doc := saveUpload(c, "id_document", h.MediaDir); doc != "" {
		profile.IDDocument = doc
		docsChanged = true
	}
	if selfie := saveUpload(c, "selfie_with_id", h.MediaDir); selfie != "" {
		profile.SelfieWithID = selfie
		docsChanged = true
	}
	if docsChanged {
		profile.Verification = domain.VerifyPending
	}
	if err := h.Sitters.UpdateProfile(&profile); err != nil {
		applog.Error(c, "sitter.profile.update.fail", err, nil)
		return c.Status(400).SendString("could not update profile")
	}
	applog.Audit(c, "sitter.profile.update", map[string]any{"sitter_id": u.ID, "docs_changed": docsChanged})
	return c.Redirect("/sitter/profile")
}

// GET /sitter/reviews
func (h *SitterHandler) MyReviews(c *fiber.Ctx) error {
	u := currentUser(c)
	reviews, err := h.Reviews.SitterReviews(u.ID)
	if err != nil {
		applog.Error(c, "sitter.reviews.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load reviews"})
	}
	return render(c, "sitter_reviews", fiber.Map{"Reviews": reviews})
}
