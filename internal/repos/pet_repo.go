package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PetRepo struct{ db *sqlx.DB }

func NewPetRepo(db *sqlx.DB) *PetRepo { return &PetRepo{db: db} }

const petCols = `id, owner_id, name, species, breed, age, medical_history, image, created_at`

func (r *PetRepo) ListByOwner(ownerID string) ([]domain.Pet, error) {
	var out []domain.Pet
	err := r.db.Select(&out, `SELECT `+petCols+` FROM pets WHERE owner_id = ? ORDER BY name`, ownerID)
	return out, err
}

// ListOthers returns pets belonging to everyone except the given owner,
// used for playdate invitations.
func (r *PetRepo) ListOthers(ownerID string) ([]domain.Pet, error) {
	var out []domain.Pet
	err := r.db.Select(&out, `SELECT `+petCols+` FROM pets WHERE owner_id != ? ORDER BY name`, ownerID)
	return out, err
}

func (r *PetRepo) Get(id string) (domain.Pet, error) {
	var p domain.Pet
	err := r.db.Get(&p, `SELECT `+petCols+` FROM pets WHERE id = ?`, id)
	return p, err
}

// GetOwned fetches a pet only if it belongs to ownerID.
func (r *PetRepo) GetOwned(id, ownerID string) (domain.Pet, error) {
	var p domain.Pet
	err := r.db.Get(&p, `SELECT `+petCols+` FROM pets WHERE id = ? AND owner_id = ?`, id, ownerID)
	return p, err
}

func (r *PetRepo) Create(p *domain.Pet) error {
	_, err := r.db.Exec(`
		INSERT INTO pets(id, owner_id, name, species, breed, age, medical_history, image)
		VALUES(?,?,?,?,?,?,?,?)
	`, p.ID, p.OwnerID, p.Name, p.Species, p.Breed, p.Age, p.MedicalHistory, p.Image)
	return err
}

func (r *PetRepo) Update(p *domain.Pet) error {
	_, err := r.db.Exec(`
		UPDATE pets SET name=?, species=?, breed=?, age=?, medical_history=?, image=?
		WHERE id=? AND owner_id=?
	`, p.Name, p.Species, p.Breed, p.Age, p.MedicalHistory, p.Image, p.ID, p.OwnerID)
	return err
}

// Delete removes the pet together with its bookings and playdates.
func (r *PetRepo) Delete(id, ownerID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM pets WHERE id=? AND owner_id=?`, id, ownerID); err != nil {
		return err
	}
	if n == 0 {
		return nil // not found or not owned; caller already 404s on read
	}
	if _, err := tx.Exec(`DELETE FROM bookings WHERE pet_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM playdates WHERE pet_id=? OR invitee_pet_id=?`, id, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pets WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
