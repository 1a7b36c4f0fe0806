package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, seller_id, name, description, price, stock, image, sales_count, created_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	return out, err
}

func (r *ProductRepo) ListBySeller(sellerID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE seller_id = ? ORDER BY name`, sellerID)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) GetOwned(id, sellerID string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ? AND seller_id = ?`, id, sellerID)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id, seller_id, name, description, price, stock, image)
		VALUES(?,?,?,?,?,?,?)
	`, p.ID, p.SellerID, p.Name, p.Description, p.Price, p.Stock, p.Image)
	return err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products SET name=?, description=?, price=?, stock=?, image=?
		WHERE id=? AND seller_id=?
	`, p.Name, p.Description, p.Price, p.Stock, p.Image, p.ID, p.SellerID)
	return err
}

// DeleteCascade removes a product with its reviews and cart rows. Orders
// that already left the cart are kept but canceled.
func (r *ProductRepo) DeleteCascade(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM product_reviews WHERE product_id=?`,
		`DELETE FROM orders WHERE product_id=? AND status='cart'`,
		`UPDATE orders SET status='canceled' WHERE product_id=? AND status != 'cart'`,
		`DELETE FROM products WHERE id=?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
