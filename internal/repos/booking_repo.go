package repos

import (
	"database/sql"
	"errors"

	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, pet_id, sitter_id, availability_id, start_at, end_at, status, created_at`

// FindConflict returns the first booking for the sitter whose interval
// intersects [startAt, endAt) under half-open semantics. Timestamps are
// fixed-width "2006-01-02 15:04" text, so string comparison is time
// comparison. Back-to-back slots (end == start) do not conflict.
func (r *BookingRepo) FindConflict(sitterID, startAt, endAt string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.Get(&b, `
		SELECT `+bookingCols+` FROM bookings
		WHERE sitter_id = ? AND start_at < ? AND end_at > ?
		LIMIT 1
	`, sitterID, endAt, startAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// InsertIfFree inserts the booking only when no overlapping booking exists
// for the sitter. The check and the insert are a single statement, so two
// racing requests for the same interval cannot both commit.
// Returns false when the slot was already taken.
func (r *BookingRepo) InsertIfFree(b *domain.Booking) (bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO bookings(id, pet_id, sitter_id, availability_id, start_at, end_at, status)
		SELECT ?, ?, ?, ?, ?, ?, 'pending'
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE sitter_id = ? AND start_at < ? AND end_at > ?
		)
	`, b.ID, b.PetID, b.SitterID, b.AvailabilityID, b.StartAt, b.EndAt,
		b.SitterID, b.EndAt, b.StartAt)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *BookingRepo) Get(id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.Get(&b, `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id)
	return b, err
}

func (r *BookingRepo) UpdateStatus(id, sitterID, status string) error {
	res, err := r.db.Exec(`UPDATE bookings SET status=? WHERE id=? AND sitter_id=?`, status, id, sitterID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BookingRow is a booking joined with pet and owner info for display.
type BookingRow struct {
	domain.Booking
	PetName   string `db:"pet_name"`
	OwnerID   string `db:"owner_pet_id"`
	OwnerName string `db:"owner_name"`
	Sitter    string `db:"sitter_name"`
}

func (r *BookingRepo) ListBySitter(sitterID string) ([]BookingRow, error) {
	var out []BookingRow
	err := r.db.Select(&out, `
		SELECT b.id, b.pet_id, b.sitter_id, b.availability_id, b.start_at, b.end_at, b.status, b.created_at,
		       p.name AS pet_name, p.owner_id AS owner_pet_id, u.name AS owner_name, s.name AS sitter_name
		FROM bookings b
		JOIN pets p ON p.id = b.pet_id
		JOIN users u ON u.id = p.owner_id
		JOIN sitters s ON s.id = b.sitter_id
		WHERE b.sitter_id = ?
		ORDER BY b.start_at
	`, sitterID)
	return out, err
}

// ListByOwner returns bookings for all pets belonging to the owner.
func (r *BookingRepo) ListByOwner(ownerID string) ([]BookingRow, error) {
	var out []BookingRow
	err := r.db.Select(&out, `
		SELECT b.id, b.pet_id, b.sitter_id, b.availability_id, b.start_at, b.end_at, b.status, b.created_at,
		       p.name AS pet_name, p.owner_id AS owner_pet_id, u.name AS owner_name, s.name AS sitter_name
		FROM bookings b
		JOIN pets p ON p.id = b.pet_id
		JOIN users u ON u.id = p.owner_id
		JOIN sitters s ON s.id = b.sitter_id
		WHERE p.owner_id = ?
		ORDER BY b.start_at
	`, ownerID)
	return out, err
}

func (r *BookingRepo) ListAll() ([]BookingRow, error) {
	var out []BookingRow
	err := r.db.Select(&out, `
		SELECT b.id, b.pet_id, b.sitter_id, b.availability_id, b.start_at, b.end_at, b.status, b.created_at,
		       p.name AS pet_name, p.owner_id AS owner_pet_id, u.name AS owner_name, s.name AS sitter_name
		FROM bookings b
		JOIN pets p ON p.id = b.pet_id
		JOIN users u ON u.id = p.owner_id
		JOIN sitters s ON s.id = b.sitter_id
		ORDER BY b.start_at
	`)
	return out, err
}

func (r *BookingRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM bookings WHERE id=?`, id)
	return err
}
