package handlers

import (
	"strconv"

	"pawhaven/internal/domain"
	applog "pawhaven/internal/log"
	"pawhaven/internal/repos"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PetHandler struct {
	Pets     *repos.PetRepo
	MediaDir string
}

// GET /owner/pets
func (h *PetHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	pets, err := h.Pets.ListByOwner(u.ID)
	if err != nil {
		applog.Error(c, "pets.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your pets"})
	}
	return render(c, "owner_pets", fiber.Map{"Pets": pets})
}

// POST /owner/pets
func (h *PetHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	name, okName := validate.Name(c.FormValue("name"))
	species, okSpecies := validate.Species(c.FormValue("species"))
	age, _ := strconv.Atoi(c.FormValue("age"))
	if !okName || !okSpecies || age < 0 {
		return c.Status(400).SendString("invalid input")
	}
	p := &domain.Pet{
		ID:             uuid.NewString(),
		OwnerID:        u.ID,
		Name:           name,
		Species:        species,
		Breed:          c.FormValue("breed"),
		Age:            age,
		MedicalHistory: c.FormValue("medical_history"),
		Image:          saveUpload(c, "image", h.MediaDir),
	}
	if err := h.Pets.Create(p); err != nil {
		applog.Error(c, "pets.create.fail", err, map[string]any{"name": name})
		return c.Status(400).SendString("could not add pet")
	}
	applog.Audit(c, "pets.create", map[string]any{"pet_id": p.ID})
	return c.Redirect("/owner/pets")
}

// POST /owner/pets/:id
func (h *PetHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Status(400).SendString("invalid input")
	}
	p, err := h.Pets.GetOwned(id, u.ID)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Pet not found"})
	}
	if name, ok := validate.Name(c.FormValue("name")); ok {
		p.Name = name
	}
	if species, ok := validate.Species(c.FormValue("species")); ok {
		p.Species = species
	}
	if age, err := strconv.Atoi(c.FormValue("age")); err == nil && age >= 0 {
		p.Age = age
	}
	p.Breed = c.FormValue("breed")
	p.MedicalHistory = c.FormValue("medical_history")
	if img := saveUpload(c, "image", h.MediaDir); img != "" {
		p.Image = img
	}
	if err := h.Pets.Update(&p); err != nil {
		applog.Error(c, "pets.update.fail", err, map[string]any{"pet_id": id})
		return c.Status(400).SendString("could not update pet")
	}
	applog.Audit(c, "pets.update", map[string]any{"pet_id": id})
	return c.Redirect("/owner/pets")
}

// POST /owner/pets/:id/delete — removes the pet with its bookings and
// playdates.
func (h *PetHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Pets.Delete(id, u.ID); err != nil {
		applog.Error(c, "pets.delete.fail", err, map[string]any{"pet_id": id})
		return c.Status(400).SendString("could not delete pet")
	}
	applog.Audit(c, "pets.delete", map[string]any{"pet_id": id})
	return c.Redirect("/owner/pets")
}
