package handlers

import (
	"errors"

	applog "pawhaven/internal/log"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart   *services.CartService
	Orders *services.OrderService
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	v, err := h.Cart.View(u.ID)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Lines": v.Lines, "Total": v.Total})
}

// POST /cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	qty := validate.Qty(c.FormValue("qty"))
	err := h.Cart.Add(u.ID, pid, qty)
	if errors.Is(err, services.ErrInsufficientStock) {
		return c.Status(409).Render("notfound", fiber.Map{"Message": "Not enough stock for that quantity"})
	}
	if err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": pid})
		return c.Status(400).SendString("could not add to cart")
	}
	applog.Audit(c, "cart.add", map[string]any{"product_id": pid, "qty": qty})
	return c.Redirect("/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Cart.Remove(u.ID, pid); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product_id": pid})
		return c.Status(400).SendString("could not remove item")
	}
	applog.Audit(c, "cart.remove", map[string]any{"product_id": pid})
	return c.Redirect("/cart")
}

// POST /cart/checkout — every cart line becomes a pending order.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	u := currentUser(c)
	n, err := h.Orders.Checkout(u.ID)
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Status(400).Render("notfound", fiber.Map{"Message": "Your cart is empty"})
	}
	if err != nil {
		applog.Error(c, "cart.checkout.fail", err, nil)
		return c.Status(400).Render("notfound", fiber.Map{"Message": "Checkout failed"})
	}
	applog.Audit(c, "cart.checkout", map[string]any{"lines": n})
	return c.Redirect("/shop/orders")
}
