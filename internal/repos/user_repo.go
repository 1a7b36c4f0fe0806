package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,name,email,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,name,email,password_hash,role FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts the user and, for sitters, the matching sitter profile in
// one transaction so a half-registered sitter cannot exist.
func (r *UserRepo) Create(u *domain.User) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(id,name,email,password_hash,role) VALUES(?,?,?,?,?)
	`, u.ID, u.Name, u.Email, u.Hash, u.Role); err != nil {
		return err
	}
	if u.Role == domain.RoleSitter {
		if _, err := tx.Exec(`
			INSERT INTO sitters(id,name,email,verification_status) VALUES(?,?,?,'pending')
		`, u.ID, u.Name, u.Email); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT id,name,email,password_hash,role FROM users ORDER BY email`)
	return out, err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.name,u.email,u.password_hash,u.role
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// DeleteCascade removes a user and everything hanging off them by explicit
// traversal: pets (with their bookings and playdates), sitter profile,
// products, cart rows, reviews, lost pets with sightings, sessions. Orders
// that already left the cart are kept for audit and marked canceled.
func (r *UserRepo) DeleteCascade(userID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var petIDs []string
	if err := tx.Select(&petIDs, `SELECT id FROM pets WHERE owner_id=?`, userID); err != nil {
		return err
	}
	if len(petIDs) > 0 {
		query, args, err := sqlx.In(`DELETE FROM bookings WHERE pet_id IN (?)`, petIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
		query, args, err = sqlx.In(`DELETE FROM playdates WHERE pet_id IN (?) OR invitee_pet_id IN (?)`, petIDs, petIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
		query, args, err = sqlx.In(`DELETE FROM pets WHERE id IN (?)`, petIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}

	// Sitter side: bookings against the sitter, slots, pricing, reviews.
	for _, q := range []string{
		`DELETE FROM bookings WHERE sitter_id=?`,
		`DELETE FROM availabilities WHERE sitter_id=?`,
		`DELETE FROM pricing_rules WHERE sitter_id=?`,
		`DELETE FROM sitter_reviews WHERE sitter_id=?`,
		`DELETE FROM sitters WHERE id=?`,
	} {
		if _, err := tx.Exec(q, userID); err != nil {
			return err
		}
	}

	// Seller side: reviews and cart rows against their products go first.
	var prodIDs []string
	if err := tx.Select(&prodIDs, `SELECT id FROM products WHERE seller_id=?`, userID); err != nil {
		return err
	}
	if len(prodIDs) > 0 {
		for _, stmt := range []string{
			`DELETE FROM product_reviews WHERE product_id IN (?)`,
			`DELETE FROM orders WHERE product_id IN (?) AND status='cart'`,
			`UPDATE orders SET status='canceled' WHERE product_id IN (?) AND status != 'cart'`,
		} {
			query, args, err := sqlx.In(stmt, prodIDs)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(query, args...); err != nil {
				return err
			}
		}
		query, args, err := sqlx.In(`DELETE FROM products WHERE id IN (?)`, prodIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}

	// Buyer/community footprint, then sessions and the user row.
	if _, err := tx.Exec(`DELETE FROM playdates WHERE owner_id=? OR invitee_owner_id=?`, userID, userID); err != nil {
		return err
	}
	for _, q := range []string{
		`DELETE FROM orders WHERE buyer_id=? AND status='cart'`,
		`UPDATE orders SET status='canceled' WHERE buyer_id=? AND status != 'cart'`,
		`DELETE FROM campaigns WHERE seller_id=?`,
		`DELETE FROM sitter_reviews WHERE owner_id=?`,
		`DELETE FROM product_reviews WHERE user_id=?`,
		`DELETE FROM sightings WHERE lost_pet_id IN (SELECT id FROM lost_pets WHERE owner_id=?)`,
		`DELETE FROM lost_pets WHERE owner_id=?`,
		`DELETE FROM sessions WHERE user_id=?`,
		`DELETE FROM users WHERE id=?`,
	} {
		if _, err := tx.Exec(q, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
