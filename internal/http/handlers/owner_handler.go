package handlers

import (
	"errors"

	applog "pawhaven/internal/log"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// OwnerHandler covers the pet-owner side of sitting: browsing sitters,
// booking slots and reviewing past sitters.
type OwnerHandler struct {
	Bookings *services.BookingService
	Reviews  *services.ReviewService
	Sitters  *repos.SitterRepo
	Pets     *repos.PetRepo
}

// GET /owner — owner landing page with upcoming bookings.
func (h *OwnerHandler) Home(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Bookings.OwnerBookings(u.ID)
	if err != nil {
		applog.Error(c, "owner.home.fail", err, nil)
		rows = nil
	}
	return render(c, "owner_home", fiber.Map{"Bookings": rows})
}

// GET /owner/sitters — approved sitters only.
func (h *OwnerHandler) FindSitters(c *fiber.Ctx) error {
	sitters, err := h.Sitters.ListApproved()
	if err != nil {
		applog.Error(c, "owner.sitters.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load sitters"})
	}
	return render(c, "find_sitters", fiber.Map{"Sitters": sitters})
}

// GET /owner/sitters/:id — profile with slots, pricing and reviews.
func (h *OwnerHandler) SitterProfile(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Sitter not found"})
	}
	sitter, err := h.Sitters.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Sitter not found"})
	}
	slots, err := h.Bookings.SitterSlots(id)
	if err != nil {
		applog.Error(c, "owner.sitter.slots.fail", err, map[string]any{"sitter_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load availability"})
	}
	pricing, _ := h.Sitters.ListPricing(id)
	reviews, _ := h.Reviews.SitterReviews(id)
	pets, _ := h.Pets.ListByOwner(u.ID)
	return render(c, "sitter_profile", fiber.Map{
		"Sitter": sitter, "Slots": slots, "Pricing": pricing, "Reviews": reviews, "Pets": pets,
	})
}

// POST /owner/sitters/:id/book
func (h *OwnerHandler) Book(c *fiber.Ctx) error {
	u := currentUser(c)
	sitterID, okSitter := validate.ID(c.Params("id"))
	petID, okPet := validate.ID(c.FormValue("pet_id"))
	availID := c.FormValue("availability_id")
	date := c.FormValue("date")
	startTime := c.FormValue("start_time")
	endTime := c.FormValue("end_time")

	d, okDate := validate.Date(date)
	st, okStart := validate.ClockTime(startTime)
	et, okEnd := validate.ClockTime(endTime)
	if !okSitter || !okPet || !okDate || !okStart || !okEnd {
		return c.Status(400).SendString("invalid input")
	}

	// Compose from the parsed values so the stored stamps are fixed-width.
	day := d.Format(validate.DateLayout)
	startAt := day + " " + st.Format(validate.TimeLayout)
	endAt := day + " " + et.Format(validate.TimeLayout)
	b, err := h.Bookings.Book(u.ID, petID, sitterID, availID, startAt, endAt)
	switch {
	case errors.Is(err, services.ErrSlotTaken):
		return c.Status(409).Render("notfound", fiber.Map{"Message": "That time is already booked"})
	case errors.Is(err, services.ErrBadInterval), errors.Is(err, services.ErrNotYourPet):
		return c.Status(400).SendString("invalid input")
	case err != nil:
		applog.Error(c, "owner.book.fail", err, map[string]any{"sitter_id": sitterID})
		return c.Status(400).SendString("could not book")
	}
	applog.Audit(c, "owner.book", map[string]any{"booking_id": b.ID, "sitter_id": sitterID})
	return c.Redirect("/owner/bookings")
}

// GET /owner/bookings
func (h *OwnerHandler) MyBookings(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Bookings.OwnerBookings(u.ID)
	if err != nil {
		applog.Error(c, "owner.bookings.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load bookings"})
	}
	return render(c, "owner_bookings", fiber.Map{"Bookings": rows})
}

// POST /owner/sitters/:id/review — one review per sitter; resubmits revise.
func (h *OwnerHandler) ReviewSitter(c *fiber.Ctx) error {
	u := currentUser(c)
	sitterID, okID := validate.ID(c.Params("id"))
	rating, okRating := validate.Rating(c.FormValue("rating"))
	if !okID || !okRating {
		return c.Status(400).SendString("invalid input")
	}
	err := h.Reviews.RateSitter(sitterID, u.ID, u.Name, rating, c.FormValue("review_text"))
	if err != nil {
		applog.Error(c, "owner.review.fail", err, map[string]any{"sitter_id": sitterID})
		return c.Status(400).SendString("could not save review")
	}
	applog.Audit(c, "owner.review", map[string]any{"sitter_id": sitterID, "rating": rating})
	return c.Redirect("/owner/sitters/" + sitterID)
}
