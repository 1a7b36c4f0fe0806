package services_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *services.OrderService, *services.CartService) {
	t.Helper()
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cat := &services.CatalogService{Prods: prodRepo, Campaigns: repos.NewCampaignRepo(db), Orders: orderRepo}
	ord := &services.OrderService{Orders: orderRepo, Prods: prodRepo}
	cart := &services.CartService{Orders: orderRepo, Prods: prodRepo}
	return cat, ord, cart
}

func TestCatalog_ProductLifecycle(t *testing.T) {
	cat, _, _ := newCatalog(t)

	p, err := cat.AddProduct("u-serena", "Travel crate", "airline approved", 59.90, 8, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := cat.UpdateProduct(p.ID, "u-serena", "Travel crate XL", "bigger", 69.90, 6, ""); err != nil {
		t.Fatal(err)
	}
	got, err := cat.Product(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Travel crate XL" || got.Stock != 6 {
		t.Fatalf("update lost fields: %+v", got)
	}

	// another seller cannot touch it
	if err := cat.UpdateProduct(p.ID, "u-sam", "stolen", "", 1, 1, ""); err == nil {
		t.Fatal("foreign seller must not edit the product")
	}
	if err := cat.RemoveProduct(p.ID, "u-sam"); err == nil {
		t.Fatal("foreign seller must not delete the product")
	}

	if err := cat.RemoveProduct(p.ID, "u-serena"); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Product(p.ID); err == nil {
		t.Fatal("deleted product should be gone")
	}
}

func TestCatalog_DeleteCancelsOrdersKeepsHistory(t *testing.T) {
	cat, ord, cart := newCatalog(t)

	if err := cart.Add("u-olivia", "prod-tower", 1); err != nil {
		t.Fatal(err)
	}
	o, err := ord.PlaceOrder("u-sam", "prod-tower")
	if err != nil {
		t.Fatal(err)
	}

	if err := cat.RemoveProduct("prod-tower", "u-serena"); err != nil {
		t.Fatal(err)
	}

	// cart line vanished with the product
	v, err := cart.View("u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 0 {
		t.Fatalf("cart lines for a deleted product must go, got %d", len(v.Lines))
	}

	// the placed order survives as canceled
	rows, err := ord.BuyerOrders("u-sam")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != o.ID {
		t.Fatalf("order history must survive, got %+v", rows)
	}
	if rows[0].Status != domain.OrderCanceled {
		t.Fatalf("want canceled, got %s", rows[0].Status)
	}
	if rows[0].ProductName != "(removed)" {
		t.Fatalf("removed product should render as placeholder, got %q", rows[0].ProductName)
	}
}

func TestCatalog_DashboardStats(t *testing.T) {
	cat, ord, _ := newCatalog(t)

	if _, err := ord.PlaceOrder("u-olivia", "prod-leash"); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddCampaign(&domain.Campaign{SellerID: "u-serena", Name: "Fall sale", Discount: 10, StartDate: "2026-09-01", EndDate: "2026-09-30", Active: true}); err != nil {
		t.Fatal(err)
	}

	st, err := cat.Dashboard("u-serena")
	if err != nil {
		t.Fatal(err)
	}
	if st.Products != 3 {
		t.Fatalf("want 3 seeded products, got %d", st.Products)
	}
	if st.UnitsSold != 1 {
		t.Fatalf("want 1 unit sold, got %d", st.UnitsSold)
	}
	if st.Campaigns != 1 {
		t.Fatalf("want 1 campaign, got %d", st.Campaigns)
	}
	if st.LowStock != 1 { // prod-tower sits at 4
		t.Fatalf("want 1 low-stock item, got %d", st.LowStock)
	}
}
