package services

import (
	"errors"

	"pawhaven/internal/repos"

	"github.com/google/uuid"
)

var ErrInsufficientStock = errors.New("not enough stock")

type CartService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

// Add puts qty units of the product in the buyer's cart. A repeat add for
// the same product folds into the existing line, repricing the line total
// at the product's current price. The cart is untouched when stock cannot
// cover the requested quantity.
func (s *CartService) Add(buyerID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	return s.Orders.UpsertCartLine(uuid.NewString(), buyerID, productID, qty, p.Price)
}

func (s *CartService) Remove(buyerID, productID string) error {
	return s.Orders.RemoveCartLine(buyerID, productID)
}

type CartView struct {
	Lines []repos.CartRow
	Total float64
}

func (s *CartService) View(buyerID string) (CartView, error) {
	lines, err := s.Orders.CartLines(buyerID)
	if err != nil {
		return CartView{}, err
	}
	v := CartView{Lines: lines}
	for _, l := range lines {
		v.Total += l.TotalPrice
	}
	return v, nil
}
