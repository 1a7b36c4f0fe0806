package services

import (
	"pawhaven/internal/domain"
	"pawhaven/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Prods     *repos.ProductRepo
	Campaigns *repos.CampaignRepo
	Orders    *repos.OrderRepo
}

func (s *CatalogService) Storefront() ([]domain.Product, error) { return s.Prods.List() }

func (s *CatalogService) Product(id string) (domain.Product, error) { return s.Prods.Get(id) }

func (s *CatalogService) SellerProducts(sellerID string) ([]domain.Product, error) {
	return s.Prods.ListBySeller(sellerID)
}

func (s *CatalogService) AddProduct(sellerID, name, desc string, price float64, stock int, image string) (*domain.Product, error) {
	p := &domain.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Name:        name,
		Description: desc,
		Price:       price,
		Stock:       stock,
		Image:       image,
	}
	if err := s.Prods.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct rewrites an owned product's listing fields. The image is
// kept when no replacement was uploaded.
func (s *CatalogService) UpdateProduct(id, sellerID, name, desc string, price float64, stock int, image string) error {
	p, err := s.Prods.GetOwned(id, sellerID)
	if err != nil {
		return err
	}
	p.Name, p.Description, p.Price, p.Stock = name, desc, price, stock
	if image != "" {
		p.Image = image
	}
	return s.Prods.Update(&p)
}

// RemoveProduct deletes an owned product along with its reviews and cart
// lines. Completed and pending orders survive as canceled rows.
func (s *CatalogService) RemoveProduct(id, sellerID string) error {
	if _, err := s.Prods.GetOwned(id, sellerID); err != nil {
		return err
	}
	return s.Prods.DeleteCascade(id)
}

func (s *CatalogService) SellerCampaigns(sellerID string) ([]domain.Campaign, error) {
	return s.Campaigns.ListBySeller(sellerID)
}

func (s *CatalogService) AddCampaign(c *domain.Campaign) error {
	c.ID = uuid.NewString()
	return s.Campaigns.Create(c)
}

func (s *CatalogService) UpdateCampaign(c *domain.Campaign) error {
	if _, err := s.Campaigns.GetOwned(c.ID, c.SellerID); err != nil {
		return err
	}
	return s.Campaigns.Update(c)
}

func (s *CatalogService) RemoveCampaign(id, sellerID string) error {
	return s.Campaigns.Delete(id, sellerID)
}

// DashboardStats is the seller landing-page summary.
type DashboardStats struct {
	Products  int
	UnitsSold int
	Campaigns int
	LowStock  int
}

func (s *CatalogService) Dashboard(sellerID string) (DashboardStats, error) {
	var st DashboardStats
	prods, err := s.Prods.ListBySeller(sellerID)
	if err != nil {
		return st, err
	}
	st.Products = len(prods)
	for _, p := range prods {
		if p.Stock < 5 {
			st.LowStock++
		}
	}
	if st.UnitsSold, err = s.Orders.UnitsSold(sellerID); err != nil {
		return st, err
	}
	if st.Campaigns, err = s.Campaigns.CountBySeller(sellerID); err != nil {
		return st, err
	}
	return st, nil
}
