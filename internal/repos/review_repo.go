package repos

import (
	"database/sql"
	"errors"

	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// UpsertSitterReview keeps one row per (sitter, owner): a second submission
// from the same owner replaces the rating and text in place.
func (r *ReviewRepo) UpsertSitterReview(rv *domain.SitterReview) error {
	_, err := r.db.Exec(`
		INSERT INTO sitter_reviews(id, sitter_id, owner_id, owner_name, rating, review_text)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT(sitter_id, owner_id) DO UPDATE
		SET rating=excluded.rating, review_text=excluded.review_text
	`, rv.ID, rv.SitterID, rv.OwnerID, rv.OwnerName, rv.Rating, rv.Text)
	return err
}

func (r *ReviewRepo) SitterReviewBy(sitterID, ownerID string) (*domain.SitterReview, error) {
	var rv domain.SitterReview
	err := r.db.Get(&rv, `
		SELECT id, sitter_id, owner_id, owner_name, rating, review_text, created_at
		FROM sitter_reviews WHERE sitter_id=? AND owner_id=?
	`, sitterID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) ListSitterReviews(sitterID string) ([]domain.SitterReview, error) {
	var out []domain.SitterReview
	err := r.db.Select(&out, `
		SELECT id, sitter_id, owner_id, owner_name, rating, review_text, created_at
		FROM sitter_reviews WHERE sitter_id=? ORDER BY datetime(created_at) DESC
	`, sitterID)
	return out, err
}

// UpsertProductReview mirrors the sitter upsert keyed on (product, user).
func (r *ReviewRepo) UpsertProductReview(rv *domain.ProductReview) error {
	_, err := r.db.Exec(`
		INSERT INTO product_reviews(id, product_id, user_id, rating, review_text)
		VALUES(?,?,?,?,?)
		ON CONFLICT(product_id, user_id) DO UPDATE
		SET rating=excluded.rating, review_text=excluded.review_text
	`, rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Text)
	return err
}

func (r *ReviewRepo) ProductReviewBy(productID, userID string) (*domain.ProductReview, error) {
	var rv domain.ProductReview
	err := r.db.Get(&rv, `
		SELECT id, product_id, user_id, rating, review_text, created_at
		FROM product_reviews WHERE product_id=? AND user_id=?
	`, productID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// ProductReviewRow carries the product name for seller-facing listings.
type ProductReviewRow struct {
	domain.ProductReview
	ProductName string `db:"product_name"`
}

func (r *ReviewRepo) ListProductReviews(productID string) ([]domain.ProductReview, error) {
	var out []domain.ProductReview
	err := r.db.Select(&out, `
		SELECT id, product_id, user_id, rating, review_text, created_at
		FROM product_reviews WHERE product_id=? ORDER BY datetime(created_at) DESC
	`, productID)
	return out, err
}

func (r *ReviewRepo) ListReviewsForSeller(sellerID string) ([]ProductReviewRow, error) {
	var out []ProductReviewRow
	err := r.db.Select(&out, `
		SELECT rv.id, rv.product_id, rv.user_id, rv.rating, rv.review_text, rv.created_at,
		       p.name AS product_name
		FROM product_reviews rv
		JOIN products p ON p.id = rv.product_id
		WHERE p.seller_id = ?
		ORDER BY datetime(rv.created_at) DESC
	`, sellerID)
	return out, err
}
