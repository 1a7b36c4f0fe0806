package handlers

import (
	"errors"

	applog "pawhaven/internal/log"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PlaydateHandler struct {
	Playdates *services.PlaydateService
	Pets      *repos.PetRepo
}

// GET /playdates — invites you sent and invites waiting on you.
func (h *PlaydateHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Playdates.ListFor(u.ID)
	if err != nil {
		applog.Error(c, "playdates.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load playdates"})
	}
	mine, _ := h.Pets.ListByOwner(u.ID)
	others, _ := h.Pets.ListOthers(u.ID)
	return render(c, "playdates", fiber.Map{"Playdates": rows, "MyPets": mine, "OtherPets": others})
}

// POST /playdates
func (h *PlaydateHandler) Invite(c *fiber.Ctx) error {
	u := currentUser(c)
	petID, okPet := validate.ID(c.FormValue("pet_id"))
	inviteePetID, okInvitee := validate.ID(c.FormValue("invitee_pet_id"))
	date := c.FormValue("date")
	tm := c.FormValue("time")
	_, okDate := validate.Date(date)
	_, okTime := validate.ClockTime(tm)
	location := c.FormValue("location")
	if !okPet || !okInvitee || !okDate || !okTime || location == "" {
		return c.Status(400).SendString("invalid input")
	}
	pd, err := h.Playdates.Invite(u.ID, petID, inviteePetID, date, tm, location)
	switch {
	case errors.Is(err, services.ErrNotYourPet), errors.Is(err, services.ErrSelfPlaydate):
		return c.Status(400).SendString("invalid input")
	case err != nil:
		applog.Error(c, "playdates.invite.fail", err, nil)
		return c.Status(400).SendString("could not send invite")
	}
	applog.Audit(c, "playdates.invite", map[string]any{"playdate_id": pd.ID})
	return c.Redirect("/playdates")
}

// POST /playdates/:id/respond — invitee accepts or declines.
func (h *PlaydateHandler) Respond(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	accept := c.FormValue("response") == "accept"
	if err := h.Playdates.Respond(id, u.ID, accept); err != nil {
		applog.Error(c, "playdates.respond.fail", err, map[string]any{"playdate_id": id})
		return c.Status(400).SendString("could not respond")
	}
	applog.Audit(c, "playdates.respond", map[string]any{"playdate_id": id, "accept": accept})
	return c.Redirect("/playdates")
}

// POST /playdates/:id/cancel — requester withdraws a pending invite.
func (h *PlaydateHandler) Cancel(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Playdates.Cancel(id, u.ID); err != nil {
		applog.Error(c, "playdates.cancel.fail", err, map[string]any{"playdate_id": id})
		return c.Status(400).SendString("could not cancel")
	}
	applog.Audit(c, "playdates.cancel", map[string]any{"playdate_id": id})
	return c.Redirect("/playdates")
}
