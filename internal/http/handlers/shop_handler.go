package handlers

import (
	applog "pawhaven/internal/log"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ShopHandler is the buyer-facing storefront.
type ShopHandler struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
	Reviews *services.ReviewService
}

// GET /shop
func (h *ShopHandler) Storefront(c *fiber.Ctx) error {
	prods, err := h.Catalog.Storefront()
	if err != nil {
		applog.Error(c, "shop.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the shop"})
	}
	return render(c, "shop", fiber.Map{"Products": prods})
}

// GET /shop/products/:id
func (h *ShopHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Product(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	reviews, _ := h.Reviews.ProductReviews(id)
	return render(c, "product", fiber.Map{"P": p, "Reviews": reviews})
}

// POST /shop/products/:id/order — buy-now for a single unit.
func (h *ShopHandler) PlaceOrder(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	o, err := h.Orders.PlaceOrder(u.ID, id)
	if err != nil {
		applog.Error(c, "shop.order.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not place order")
	}
	applog.Audit(c, "shop.order", map[string]any{"order_id": o.ID, "product_id": id})
	return c.Redirect("/shop/orders")
}

// GET /shop/orders
func (h *ShopHandler) MyOrders(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Orders.BuyerOrders(u.ID)
	if err != nil {
		applog.Error(c, "shop.orders.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "my_orders", fiber.Map{"Orders": rows})
}

// POST /shop/products/:id/review
func (h *ShopHandler) ReviewProduct(c *fiber.Ctx) error {
	u := currentUser(c)
	id, okID := validate.ID(c.Params("id"))
	rating, okRating := validate.Rating(c.FormValue("rating"))
	if !okID || !okRating {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Reviews.RateProduct(id, u.ID, rating, c.FormValue("review_text")); err != nil {
		applog.Error(c, "shop.review.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not save review")
	}
	applog.Audit(c, "shop.review", map[string]any{"product_id": id, "rating": rating})
	return c.Redirect("/shop/products/" + id)
}
