package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CommunityRepo struct{ db *sqlx.DB }

func NewCommunityRepo(db *sqlx.DB) *CommunityRepo { return &CommunityRepo{db: db} }

const lostPetCols = `id, owner_id, name, type, breed, color, last_seen, description,
	status, reward, image, created_at`

// LostPetRow annotates a lost-pet report with its pending sighting count.
type LostPetRow struct {
	domain.LostPet
	PendingSightings int `db:"pending_sightings"`
}

func (r *CommunityRepo) CreateLostPet(p *domain.LostPet) error {
	_, err := r.db.Exec(`
		INSERT INTO lost_pets(id, owner_id, name, type, breed, color, last_seen, description, status, reward, image)
		VALUES(?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.OwnerID, p.Name, p.Type, p.Breed, p.Color, p.LastSeen, p.Description, p.Status, p.Reward, p.Image)
	return err
}

func (r *CommunityRepo) GetLostPet(id string) (domain.LostPet, error) {
	var p domain.LostPet
	err := r.db.Get(&p, `SELECT `+lostPetCols+` FROM lost_pets WHERE id=?`, id)
	return p, err
}

// Feed lists still-lost pets with pending sighting counts, newest first.
func (r *CommunityRepo) Feed() ([]LostPetRow, error) {
	var out []LostPetRow
	err := r.db.Select(&out, `
		SELECT lp.id, lp.owner_id, lp.name, lp.type, lp.breed, lp.color, lp.last_seen,
		       lp.description, lp.status, lp.reward, lp.image, lp.created_at,
		       (SELECT COUNT(*) FROM sightings s
		        WHERE s.lost_pet_id = lp.id AND s.status = 'Pending') AS pending_sightings
		FROM lost_pets lp
		WHERE lp.status = 'Lost'
		ORDER BY datetime(lp.created_at) DESC
	`)
	return out, err
}

func (r *CommunityRepo) ListLostPetsByOwner(ownerID string) ([]LostPetRow, error) {
	var out []LostPetRow
	err := r.db.Select(&out, `
		SELECT lp.id, lp.owner_id, lp.name, lp.type, lp.breed, lp.color, lp.last_seen,
		       lp.description, lp.status, lp.reward, lp.image, lp.created_at,
		       (SELECT COUNT(*) FROM sightings s
		        WHERE s.lost_pet_id = lp.id AND s.status = 'Pending') AS pending_sightings
		FROM lost_pets lp
		WHERE lp.owner_id = ?
		ORDER BY datetime(lp.created_at) DESC
	`, ownerID)
	return out, err
}

func (r *CommunityRepo) ListLostPetsByOthers(ownerID string) ([]LostPetRow, error) {
	var out []LostPetRow
	err := r.db.Select(&out, `
		SELECT lp.id, lp.owner_id, lp.name, lp.type, lp.breed, lp.color, lp.last_seen,
		       lp.description, lp.status, lp.reward, lp.image, lp.created_at,
		       (SELECT COUNT(*) FROM sightings s
		        WHERE s.lost_pet_id = lp.id AND s.status = 'Pending') AS pending_sightings
		FROM lost_pets lp
		WHERE lp.owner_id != ?
		ORDER BY datetime(lp.created_at) DESC
	`, ownerID)
	return out, err
}

// MarkFound flips the report to Found, only for the owning user.
func (r *CommunityRepo) MarkFound(id, ownerID string) error {
	_, err := r.db.Exec(`UPDATE lost_pets SET status='Found' WHERE id=? AND owner_id=?`, id, ownerID)
	return err
}

func (r *CommunityRepo) CreateSighting(s *domain.Sighting) error {
	_, err := r.db.Exec(`
		INSERT INTO sightings(id, lost_pet_id, owner_id, helper_name, helper_phone, confidence, details, location, status)
		VALUES(?,?,?,?,?,?,?,?,'Pending')
	`, s.ID, s.LostPetID, s.OwnerID, s.HelperName, s.HelperPhone, s.Confidence, s.Details, s.Location)
	return err
}

func (r *CommunityRepo) ListSightings(lostPetID string) ([]domain.Sighting, error) {
	var out []domain.Sighting
	err := r.db.Select(&out, `
		SELECT id, lost_pet_id, owner_id, helper_name, helper_phone, confidence, details, location, status, created_at
		FROM sightings WHERE lost_pet_id=? ORDER BY datetime(created_at) DESC
	`, lostPetID)
	return out, err
}
