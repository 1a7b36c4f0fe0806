package handlers

import (
	"strconv"

	"pawhaven/internal/domain"
	applog "pawhaven/internal/log"
	"pawhaven/internal/services"
	"pawhaven/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SellerHandler struct {
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	MediaDir string
}

// GET /seller
func (h *SellerHandler) Dashboard(c *fiber.Ctx) error {
	u := currentUser(c)
	stats, err := h.Catalog.Dashboard(u.ID)
	if err != nil {
		applog.Error(c, "seller.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	return render(c, "seller_dashboard", fiber.Map{"Stats": stats})
}

// GET /seller/products
func (h *SellerHandler) Products(c *fiber.Ctx) error {
	u := currentUser(c)
	prods, err := h.Catalog.SellerProducts(u.ID)
	if err != nil {
		applog.Error(c, "seller.products.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "seller_products", fiber.Map{"Products": prods})
}

// POST /seller/products
func (h *SellerHandler) AddProduct(c *fiber.Ctx) error {
	u := currentUser(c)
	name, okName := validate.Name(c.FormValue("name"))
	price, okPrice := validate.Price(c.FormValue("price"))
	stock, okStock := validate.Stock(c.FormValue("stock"))
	if !okName || !okPrice || !okStock {
		return c.Status(400).SendString("invalid input")
	}
	img := saveUpload(c, "image", h.MediaDir)
	p, err := h.Catalog.AddProduct(u.ID, name, c.FormValue("description"), price, stock, img)
	if err != nil {
		applog.Error(c, "seller.products.add.fail", err, map[string]any{"name": name})
		return c.Status(400).SendString("could not add product")
	}
	applog.Audit(c, "seller.products.add", map[string]any{"product_id": p.ID})
	return c.Redirect("/seller/products")
}

// POST /seller/products/:id
func (h *SellerHandler) UpdateProduct(c *fiber.Ctx) error {
	u := currentUser(c)
	id, okID := validate.ID(c.Params("id"))
	name, okName := validate.Name(c.FormValue("name"))
	price, okPrice := validate.Price(c.FormValue("price"))
	stock, okStock := validate.Stock(c.FormValue("stock"))
	if !okID || !okName || !okPrice || !okStock {
		return c.Status(400).SendString("invalid input")
	}
	img := saveUpload(c, "image", h.MediaDir)
	if err := h.Catalog.UpdateProduct(id, u.ID, name, c.FormValue("description"), price, stock, img); err != nil {
		applog.Error(c, "seller.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "seller.products.update", map[string]any{"product_id": id})
	return c.Redirect("/seller/products")
}

// POST /seller/products/:id/delete
func (h *SellerHandler) DeleteProduct(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Catalog.RemoveProduct(id, u.ID); err != nil {
		applog.Error(c, "seller.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "seller.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/seller/products")
}

// GET /seller/orders
func (h *SellerHandler) OrdersPage(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Orders.SellerOrders(u.ID)
	if err != nil {
		applog.Error(c, "seller.orders.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "seller_orders", fiber.Map{"Orders": rows})
}

// POST /seller/orders/:id/status — ship or deliver an order for one of the
// seller's products.
func (h *SellerHandler) AdvanceOrder(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Orders.Advance(id, u.ID, status); err != nil {
		applog.Error(c, "seller.orders.advance.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(400).SendString("could not update order")
	}
	applog.Audit(c, "seller.orders.advance", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/seller/orders")
}

// GET /seller/campaigns
func (h *SellerHandler) Campaigns(c *fiber.Ctx) error {
	u := currentUser(c)
	camps, err := h.Catalog.SellerCampaigns(u.ID)
	if err != nil {
		applog.Error(c, "seller.campaigns.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load campaigns"})
	}
	return render(c, "seller_campaigns", fiber.Map{"Campaigns": camps})
}

func campaignFromForm(c *fiber.Ctx, sellerID string) (*domain.Campaign, bool) {
	name, okName := validate.Name(c.FormValue("name"))
	discount, err := strconv.ParseFloat(c.FormValue("discount"), 64)
	_, okStart := validate.Date(c.FormValue("start_date"))
	_, okEnd := validate.Date(c.FormValue("end_date"))
	if !okName || err != nil || discount < 0 || discount > 100 || !okStart || !okEnd {
		return nil, false
	}
	return &domain.Campaign{
		SellerID:    sellerID,
		Name:        name,
		Discount:    discount,
		Description: c.FormValue("description"),
		StartDate:   c.FormValue("start_date"),
		EndDate:     c.FormValue("end_date"),
		Active:      c.FormValue("active") == "on",
	}, true
}

// POST /seller/campaigns
func (h *SellerHandler) AddCampaign(c *fiber.Ctx) error {
	u := currentUser(c)
	camp, ok := campaignFromForm(c, u.ID)
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Catalog.AddCampaign(camp); err != nil {
		applog.Error(c, "seller.campaigns.add.fail", err, nil)
		return c.Status(400).SendString("could not add campaign")
	}
	applog.Audit(c, "seller.campaigns.add", map[string]any{"campaign_id": camp.ID})
	return c.Redirect("/seller/campaigns")
}

// POST /seller/campaigns/:id
func (h *SellerHandler) UpdateCampaign(c *fiber.Ctx) error {
	u := currentUser(c)
	id, okID := validate.ID(c.Params("id"))
	camp, okForm := campaignFromForm(c, u.ID)
	if !okID || !okForm {
		return c.Status(400).SendString("invalid input")
	}
	camp.ID = id
	if err := h.Catalog.UpdateCampaign(camp); err != nil {
		applog.Error(c, "seller.campaigns.update.fail", err, map[string]any{"campaign_id": id})
		return c.Status(400).SendString("could not update campaign")
	}
	applog.Audit(c, "seller.campaigns.update", map[string]any{"campaign_id": id})
	return c.Redirect("/seller/campaigns")
}

// POST /seller/campaigns/:id/delete
func (h *SellerHandler) DeleteCampaign(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Catalog.RemoveCampaign(id, u.ID); err != nil {
		applog.Error(c, "seller.campaigns.delete.fail", err, map[string]any{"campaign_id": id})
		return c.Status(400).SendString("could not delete campaign")
	}
	applog.Audit(c, "seller.campaigns.delete", map[string]any{"campaign_id": id})
	return c.Redirect("/seller/campaigns")
}

// GET /seller/reviews — feedback across all of the seller's products.
func (h *SellerHandler) ReviewsPage(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Reviews.SellerFeedback(u.ID)
	if err != nil {
		applog.Error(c, "seller.reviews.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load reviews"})
	}
	return render(c, "seller_reviews", fiber.Map{"Reviews": rows})
}
