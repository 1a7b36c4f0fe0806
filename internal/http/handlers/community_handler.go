package handlers

import (
	"errors"
	"strconv"

	applog "pawhaven/internal/log"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// CommunityHandler serves the lost-and-found board.
type CommunityHandler struct {
	Community *services.CommunityService
	MediaDir  string
}

// GET /community — your reports plus everyone else's open ones.
func (h *CommunityHandler) Board(c *fiber.Ctx) error {
	u := currentUser(c)
	mine, err := h.Community.MyReports(u.ID)
	if err != nil {
		applog.Error(c, "community.board.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the board"})
	}
	others, _ := h.Community.OthersReports(u.ID)
	return render(c, "community", fiber.Map{"Mine": mine, "Others": others})
}

// POST /community/report
func (h *CommunityHandler) Report(c *fiber.Ctx) error {
	u := currentUser(c)
	name, okName := validate.Name(c.FormValue("name"))
	if !okName {
		return c.Status(400).SendString("invalid input")
	}
	reward, _ := strconv.ParseFloat(c.FormValue("reward"), 64)
	if reward < 0 {
		reward = 0
	}
	lp, err := h.Community.Report(u.ID, name,
		c.FormValue("type"), c.FormValue("breed"), c.FormValue("color"),
		c.FormValue("last_seen"), c.FormValue("description"),
		reward, saveUpload(c, "image", h.MediaDir))
	if err != nil {
		applog.Error(c, "community.report.fail", err, nil)
		return c.Status(400).SendString("could not file report")
	}
	applog.Audit(c, "community.report", map[string]any{"lost_pet_id": lp.ID})
	return c.Redirect("/community")
}

// POST /community/:id/found
func (h *CommunityHandler) MarkFound(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	err := h.Community.MarkFound(id, u.ID)
	if errors.Is(err, services.ErrNotYourReport) {
		return c.Status(403).Render("notfound", fiber.Map{"Message": "Access denied"})
	}
	if err != nil {
		applog.Error(c, "community.found.fail", err, map[string]any{"lost_pet_id": id})
		return c.Status(400).SendString("could not update report")
	}
	applog.Audit(c, "community.found", map[string]any{"lost_pet_id": id})
	return c.Redirect("/community")
}

// POST /community/:id/sighting — a tip from another user; the helper's
// name, phone, confidence and details are all required.
func (h *CommunityHandler) ReportSighting(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	helper, okHelper := validate.Name(c.FormValue("helper_name"))
	phone, okPhone := validate.Phone(c.FormValue("helper_phone"))
	confidence, err := strconv.Atoi(c.FormValue("confidence"))
	details := c.FormValue("details")
	if !okID || !okHelper || !okPhone || err != nil || confidence < 1 || confidence > 100 || details == "" {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Community.ReportSighting(id, helper, phone, confidence, details, c.FormValue("location")); err != nil {
		if errors.Is(err, services.ErrAlreadyFound) {
			return c.Status(409).Render("notfound", fiber.Map{"Message": "This pet has already been found"})
		}
		applog.Error(c, "community.sighting.fail", err, map[string]any{"lost_pet_id": id})
		return c.Status(400).SendString("could not report sighting")
	}
	applog.Audit(c, "community.sighting", map[string]any{"lost_pet_id": id})
	return c.Redirect("/community")
}

// GET /community/:id/sightings — owner-only view of collected tips.
func (h *CommunityHandler) Sightings(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	tips, err := h.Community.Sightings(id, u.ID)
	if errors.Is(err, services.ErrNotYourReport) {
		return c.Status(403).Render("notfound", fiber.Map{"Message": "Access denied"})
	}
	if err != nil {
		applog.Error(c, "community.sightings.fail", err, map[string]any{"lost_pet_id": id})
		return c.Status(400).SendString("could not load sightings")
	}
	return render(c, "sightings", fiber.Map{"Sightings": tips, "LostPetID": id})
}
