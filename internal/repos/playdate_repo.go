package repos

import (
	"database/sql"

	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PlaydateRepo struct{ db *sqlx.DB }

func NewPlaydateRepo(db *sqlx.DB) *PlaydateRepo { return &PlaydateRepo{db: db} }

// PlaydateRow joins in the display names for both sides of the invite.
type PlaydateRow struct {
	domain.Playdate
	PetName        string `db:"pet_name"`
	OwnerName      string `db:"owner_name"`
	InviteePetName string `db:"invitee_pet_name"`
	InviteeName    string `db:"invitee_name"`
}

func (r *PlaydateRepo) Create(p *domain.Playdate) error {
	_, err := r.db.Exec(`
		INSERT INTO playdates(id, owner_id, pet_id, invitee_owner_id, invitee_pet_id, date, time, location, status)
		VALUES(?,?,?,?,?,?,?,?,'Pending')
	`, p.ID, p.OwnerID, p.PetID, p.InviteeOwnerID, p.InviteePetID, p.Date, p.Time, p.Location)
	return err
}

func (r *PlaydateRepo) Get(id string) (domain.Playdate, error) {
	var p domain.Playdate
	err := r.db.Get(&p, `
		SELECT id, owner_id, pet_id, invitee_owner_id, invitee_pet_id, date, time, location, status, created_at
		FROM playdates WHERE id=?
	`, id)
	return p, err
}

// ListForUser returns playdates where the user is requester or invitee,
// soonest date first.
func (r *PlaydateRepo) ListForUser(userID string) ([]PlaydateRow, error) {
	var out []PlaydateRow
	err := r.db.Select(&out, `
		SELECT pd.id, pd.owner_id, pd.pet_id, pd.invitee_owner_id, pd.invitee_pet_id,
		       pd.date, pd.time, pd.location, pd.status, pd.created_at,
		       p1.name AS pet_name, u1.name AS owner_name,
		       p2.name AS invitee_pet_name, u2.name AS invitee_name
		FROM playdates pd
		JOIN pets p1 ON p1.id = pd.pet_id
		JOIN users u1 ON u1.id = pd.owner_id
		JOIN pets p2 ON p2.id = pd.invitee_pet_id
		JOIN users u2 ON u2.id = pd.invitee_owner_id
		WHERE pd.owner_id = ? OR pd.invitee_owner_id = ?
		ORDER BY pd.date, pd.time
	`, userID, userID)
	return out, err
}

// Respond sets Accepted or Declined; only the invitee may answer, and only
// while the invite is still Pending.
func (r *PlaydateRepo) Respond(id, inviteeID, status string) error {
	res, err := r.db.Exec(`
		UPDATE playdates SET status=?
		WHERE id=? AND invitee_owner_id=? AND status='Pending'
	`, status, id, inviteeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Cancel removes a pending invite; only the requester may cancel.
func (r *PlaydateRepo) Cancel(id, ownerID string) error {
	res, err := r.db.Exec(`
		DELETE FROM playdates
		WHERE id=? AND owner_id=? AND status='Pending'
	`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
