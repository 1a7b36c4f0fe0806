package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AvailabilityRepo struct{ db *sqlx.DB }

func NewAvailabilityRepo(db *sqlx.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

func (r *AvailabilityRepo) ListBySitter(sitterID string) ([]domain.Availability, error) {
	var out []domain.Availability
	err := r.db.Select(&out, `
		SELECT id, sitter_id, date, start_time, end_time, notes
		FROM availabilities
		WHERE sitter_id = ?
		ORDER BY date, start_time
	`, sitterID)
	return out, err
}

func (r *AvailabilityRepo) Create(a *domain.Availability) error {
	_, err := r.db.Exec(`
		INSERT INTO availabilities(id, sitter_id, date, start_time, end_time, notes)
		VALUES(?,?,?,?,?,?)
	`, a.ID, a.SitterID, a.Date, a.StartTime, a.EndTime, a.Notes)
	return err
}

// Delete removes a slot only when it belongs to the sitter.
func (r *AvailabilityRepo) Delete(id, sitterID string) error {
	_, err := r.db.Exec(`DELETE FROM availabilities WHERE id=? AND sitter_id=?`, id, sitterID)
	return err
}
