package repos

import (
	"database/sql"
	"fmt"

	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CartRow is a cart line joined with product info for display.
type CartRow struct {
	domain.Order
	ProductName string  `db:"product_name"`
	UnitPrice   float64 `db:"unit_price"`
	Stock       int     `db:"stock"`
}

// OrderRow is a finalized order joined with product and buyer names.
type OrderRow struct {
	domain.Order
	ProductName string `db:"product_name"`
	BuyerName   string `db:"buyer_name"`
}

// UpsertCartLine adds qty to the buyer's cart line for the product, creating
// it if absent. The increment-or-insert is a single statement against the
// partial unique index on (buyer_id, product_id) WHERE status='cart', and
// total_price is recomputed from the current unit price on both paths.
func (r *OrderRepo) UpsertCartLine(id, buyerID, productID string, qty int, unitPrice float64) error {
	_, err := r.db.Exec(`
		INSERT INTO orders(id, buyer_id, product_id, quantity, total_price, status)
		VALUES(?, ?, ?, ?, ?, 'cart')
		ON CONFLICT(buyer_id, product_id) WHERE status='cart' DO UPDATE
		SET quantity = orders.quantity + excluded.quantity,
		    total_price = (orders.quantity + excluded.quantity) * ?
	`, id, buyerID, productID, qty, float64(qty)*unitPrice, unitPrice)
	return err
}

func (r *OrderRepo) RemoveCartLine(buyerID, productID string) error {
	_, err := r.db.Exec(`
		DELETE FROM orders WHERE buyer_id=? AND product_id=? AND status='cart'
	`, buyerID, productID)
	return err
}

func (r *OrderRepo) CartLines(buyerID string) ([]CartRow, error) {
	var out []CartRow
	err := r.db.Select(&out, `
		SELECT o.id, o.buyer_id, o.product_id, o.quantity, o.total_price, o.status,
		       o.ordered_at, o.created_at,
		       p.name AS product_name, p.price AS unit_price, p.stock
		FROM orders o JOIN products p ON p.id = o.product_id
		WHERE o.buyer_id = ? AND o.status = 'cart'
		ORDER BY o.created_at
	`, buyerID)
	return out, err
}

// Checkout moves every cart row of the buyer to pending in one transaction,
// stamping ordered_at. With decrementStock set, each line conditionally
// debits product stock and the whole checkout aborts when any line cannot.
// Returns the number of lines checked out (0 means the cart was empty).
func (r *OrderRepo) Checkout(buyerID, orderedAt string, decrementStock bool) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	type line struct {
		ProductID string `db:"product_id"`
		Quantity  int    `db:"quantity"`
	}
	var lines []line
	if err := tx.Select(&lines, `
		SELECT product_id, quantity FROM orders WHERE buyer_id=? AND status='cart'
	`, buyerID); err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}

	if decrementStock {
		for _, l := range lines {
			res, err := tx.Exec(`
				UPDATE products SET stock = stock - ?, sales_count = sales_count + ?
				WHERE id = ? AND stock >= ?
			`, l.Quantity, l.Quantity, l.ProductID, l.Quantity)
			if err != nil {
				return 0, err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return 0, fmt.Errorf("insufficient stock for %s", l.ProductID)
			}
		}
	}

	if _, err := tx.Exec(`
		UPDATE orders SET status='pending', ordered_at=?
		WHERE buyer_id=? AND status='cart'
	`, orderedAt, buyerID); err != nil {
		return 0, err
	}
	return len(lines), tx.Commit()
}

// InsertDirect records a direct purchase bypassing the cart.
func (r *OrderRepo) InsertDirect(o *domain.Order) error {
	_, err := r.db.Exec(`
		INSERT INTO orders(id, buyer_id, product_id, quantity, total_price, status, ordered_at)
		VALUES(?,?,?,?,?,'ordered',?)
	`, o.ID, o.BuyerID, o.ProductID, o.Quantity, o.TotalPrice, o.OrderedAt)
	return err
}

// ListByBuyer returns the buyer's non-cart orders, newest first.
func (r *OrderRepo) ListByBuyer(buyerID string) ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT o.id, o.buyer_id, o.product_id, o.quantity, o.total_price, o.status,
		       o.ordered_at, o.created_at,
		       COALESCE(p.name,'(removed)') AS product_name, COALESCE(u.name,'') AS buyer_name
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		LEFT JOIN users u ON u.id = o.buyer_id
		WHERE o.buyer_id = ? AND o.status != 'cart'
		ORDER BY datetime(o.created_at) DESC
	`, buyerID)
	return out, err
}

// ListBySeller returns non-cart orders against the seller's products.
func (r *OrderRepo) ListBySeller(sellerID string) ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT o.id, o.buyer_id, o.product_id, o.quantity, o.total_price, o.status,
		       o.ordered_at, o.created_at,
		       p.name AS product_name, COALESCE(u.name,'') AS buyer_name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		LEFT JOIN users u ON u.id = o.buyer_id
		WHERE p.seller_id = ? AND o.status != 'cart'
		ORDER BY datetime(o.created_at) DESC
	`, sellerID)
	return out, err
}

// UnitsSold sums quantities over non-cart orders for the seller's products.
func (r *OrderRepo) UnitsSold(sellerID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
		SELECT COALESCE(SUM(o.quantity),0)
		FROM orders o JOIN products p ON p.id = o.product_id
		WHERE p.seller_id = ? AND o.status != 'cart'
	`, sellerID)
	return n, err
}

// AdvanceStatus moves an order to status, but only from one of the given
// prior statuses and only for the seller owning the product.
func (r *OrderRepo) AdvanceStatus(orderID, sellerID, status string, from []string) error {
	query, args, err := sqlx.In(`
		UPDATE orders SET status=?
		WHERE id=? AND status IN (?)
		  AND product_id IN (SELECT id FROM products WHERE seller_id=?)
	`, status, orderID, from, sellerID)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
