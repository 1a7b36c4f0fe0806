package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
)

func shopSvcs(db *sqlx.DB, decrement bool) (*services.CartService, *services.OrderService) {
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cart := &services.CartService{Orders: orderRepo, Prods: prodRepo}
	orders := &services.OrderService{Orders: orderRepo, Prods: prodRepo, DecrementStock: decrement}
	return cart, orders
}

func TestCart_AddMergesLines(t *testing.T) {
	db := memdb(t)
	cart, _ := shopSvcs(db, false)

	if err := cart.Add("u-olivia", "prod-leash", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add("u-olivia", "prod-leash", 1); err != nil {
		t.Fatal(err)
	}

	v, err := cart.View("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 1 {
		t.Fatalf("repeat adds should merge into one line, got %d", len(v.Lines))
	}
	if v.Lines[0].Quantity != 3 {
		t.Fatalf("want qty 3, got %d", v.Lines[0].Quantity)
	}
	// 3 * 14.50
	if v.Total < 43.49 || v.Total > 43.51 {
		t.Fatalf("want total 43.50, got %v", v.Total)
	}
}

func TestCart_StockExceededLeavesCartAlone(t *testing.T) {
	db := memdb(t)
	cart, _ := shopSvcs(db, false)

	// prod-tower has 4 in stock
	if err := cart.Add("u-olivia", "prod-tower", 5); !errors.Is(err, services.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	v, err := cart.View("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 0 {
		t.Fatalf("failed add must not touch the cart, got %d lines", len(v.Lines))
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := memdb(t)
	_, orders := shopSvcs(db, false)

	if _, err := orders.Checkout("u-olivia"); !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestCheckout_MovesLinesToPending(t *testing.T) {
	db := memdb(t)
	cart, orders := shopSvcs(db, false)

	if err := cart.Add("u-olivia", "prod-leash", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add("u-olivia", "prod-kibble", 1); err != nil {
		t.Fatal(err)
	}

	n, err := orders.Checkout("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("want 2 lines checked out, got %d", n)
	}

	// cart is empty afterwards
	v, err := cart.View("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", len(v.Lines))
	}

	rows, err := orders.BuyerOrders("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 orders, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Status != domain.OrderPending {
			t.Fatalf("want pending, got %s", r.Status)
		}
		if r.OrderedAt == "" {
			t.Fatal("ordered_at should be stamped")
		}
	}
}

func TestCheckout_StockPolicy(t *testing.T) {
	db := memdb(t)
	cart, orders := shopSvcs(db, true)
	prodRepo := repos.NewProductRepo(db)

	if err := cart.Add("u-olivia", "prod-kibble", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := orders.Checkout("u-olivia"); err != nil {
		t.Fatal(err)
	}

	p, err := prodRepo.Get("prod-kibble")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 7 {
		t.Fatalf("want stock debited to 7, got %d", p.Stock)
	}
	if p.SalesCount != 3 {
		t.Fatalf("want sales_count 3, got %d", p.SalesCount)
	}
}

func TestCheckout_StockPolicyOff(t *testing.T) {
	db := memdb(t)
	cart, orders := shopSvcs(db, false)
	prodRepo := repos.NewProductRepo(db)

	if err := cart.Add("u-olivia", "prod-kibble", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := orders.Checkout("u-olivia"); err != nil {
		t.Fatal(err)
	}

	p, err := prodRepo.Get("prod-kibble")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 10 {
		t.Fatalf("stock must be untouched with the policy off, got %d", p.Stock)
	}
}

func TestPlaceOrder_DirectPath(t *testing.T) {
	db := memdb(t)
	_, orders := shopSvcs(db, false)

	o, err := orders.PlaceOrder("u-olivia", "prod-tower")
	if err != nil {
		t.Fatal(err)
	}
	if o.Quantity != 1 {
		t.Fatalf("buy-now is always one unit, got %d", o.Quantity)
	}
	if o.Status != domain.OrderOrdered {
		t.Fatalf("want ordered, got %s", o.Status)
	}
	if o.TotalPrice < 89.89 || o.TotalPrice > 89.91 {
		t.Fatalf("want total 89.90, got %v", o.TotalPrice)
	}
}

func TestSellerAdvance_OwnOrdersOnly(t *testing.T) {
	db := memdb(t)
	_, orders := shopSvcs(db, false)

	o, err := orders.PlaceOrder("u-olivia", "prod-leash")
	if err != nil {
		t.Fatal(err)
	}

	// prod-leash belongs to u-serena; another user cannot advance it
	if err := orders.Advance(o.ID, "u-sam", domain.OrderShipped); err == nil {
		t.Fatal("foreign seller must not advance the order")
	}
	if err := orders.Advance(o.ID, "u-serena", domain.OrderShipped); err != nil {
		t.Fatal(err)
	}
	if err := orders.Advance(o.ID, "u-serena", "canceled"); !errors.Is(err, services.ErrBadStatus) {
		t.Fatalf("only shipped/delivered are seller moves, got %v", err)
	}
	if err := orders.Advance(o.ID, "u-serena", domain.OrderDelivered); err != nil {
		t.Fatal(err)
	}
}

func TestSellerAdvance_NoMovingBackwards(t *testing.T) {
	db := memdb(t)
	_, orders := shopSvcs(db, false)

	o, err := orders.PlaceOrder("u-olivia", "prod-leash")
	if err != nil {
		t.Fatal(err)
	}

	// delivered must come through shipped
	if err := orders.Advance(o.ID, "u-serena", domain.OrderDelivered); err == nil {
		t.Fatal("ordered->delivered must be refused")
	}
	if err := orders.Advance(o.ID, "u-serena", domain.OrderShipped); err != nil {
		t.Fatal(err)
	}
	if err := orders.Advance(o.ID, "u-serena", domain.OrderDelivered); err != nil {
		t.Fatal(err)
	}
	// and a delivered order stays delivered
	if err := orders.Advance(o.ID, "u-serena", domain.OrderShipped); err == nil {
		t.Fatal("delivered->shipped must be refused")
	}
}
