package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SitterRepo struct{ db *sqlx.DB }

func NewSitterRepo(db *sqlx.DB) *SitterRepo { return &SitterRepo{db: db} }

const sitterCols = `id, name, email, phone, service_types_json, verification_status,
	profile_image, id_document, selfie_with_id, created_at`

func (r *SitterRepo) Get(id string) (domain.Sitter, error) {
	var s domain.Sitter
	err := r.db.Get(&s, `SELECT `+sitterCols+` FROM sitters WHERE id = ?`, id)
	return s, err
}

func (r *SitterRepo) List() ([]domain.Sitter, error) {
	var out []domain.Sitter
	err := r.db.Select(&out, `SELECT `+sitterCols+` FROM sitters ORDER BY name`)
	return out, err
}

// ListApproved returns sitters visible to owners on the browse page.
func (r *SitterRepo) ListApproved() ([]domain.Sitter, error) {
	var out []domain.Sitter
	err := r.db.Select(&out, `
		SELECT `+sitterCols+` FROM sitters
		WHERE verification_status = 'approved'
		ORDER BY name
	`)
	return out, err
}

func (r *SitterRepo) UpdateProfile(s *domain.Sitter) error {
	_, err := r.db.Exec(`
		UPDATE sitters
		SET name=?, email=?, phone=?, service_types_json=?, profile_image=?, id_document=?, selfie_with_id=?
		WHERE id=?
	`, s.Name, s.Email, s.Phone, s.ServiceTypes, s.ProfileImage, s.IDDocument, s.SelfieWithID, s.ID)
	return err
}

func (r *SitterRepo) SetVerification(id, status string) error {
	_, err := r.db.Exec(`UPDATE sitters SET verification_status=? WHERE id=?`, status, id)
	return err
}

// DeleteCascade removes a sitter profile with its slots, bookings, pricing
// rules and reviews. The user account, if any, stays.
func (r *SitterRepo) DeleteCascade(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM bookings WHERE sitter_id=?`,
		`DELETE FROM availabilities WHERE sitter_id=?`,
		`DELETE FROM pricing_rules WHERE sitter_id=?`,
		`DELETE FROM sitter_reviews WHERE sitter_id=?`,
		`DELETE FROM sitters WHERE id=?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ---------- Pricing rules ----------

func (r *SitterRepo) ListPricing(sitterID string) ([]domain.PricingRule, error) {
	var out []domain.PricingRule
	err := r.db.Select(&out, `
		SELECT id, sitter_id, service_name, pet_size, duration, special_needs, price
		FROM pricing_rules WHERE sitter_id=? ORDER BY service_name
	`, sitterID)
	return out, err
}

func (r *SitterRepo) AddPricing(p *domain.PricingRule) error {
	_, err := r.db.Exec(`
		INSERT INTO pricing_rules(id, sitter_id, service_name, pet_size, duration, special_needs, price)
		VALUES(?,?,?,?,?,?,?)
	`, p.ID, p.SitterID, p.ServiceName, p.PetSize, p.Duration, p.SpecialNeeds, p.Price)
	return err
}

func (r *SitterRepo) UpdatePricing(p *domain.PricingRule) error {
	_, err := r.db.Exec(`
		UPDATE pricing_rules
		SET service_name=?, pet_size=?, duration=?, special_needs=?, price=?
		WHERE id=? AND sitter_id=?
	`, p.ServiceName, p.PetSize, p.Duration, p.SpecialNeeds, p.Price, p.ID, p.SitterID)
	return err
}

func (r *SitterRepo) DeletePricing(id, sitterID string) error {
	_, err := r.db.Exec(`DELETE FROM pricing_rules WHERE id=? AND sitter_id=?`, id, sitterID)
	return err
}
