package services

import (
	"errors"
	"time"

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"
	"pawhaven/internal/validate"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrBadStatus = errors.New("unknown order status")
)

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo

	// DecrementStock controls whether checkout reserves inventory. Off by
	// default: stock is advisory and sellers reconcile it by hand.
	DecrementStock bool
}

// Checkout converts every cart line to a pending order in one transaction.
// With DecrementStock set, checkout also debits product stock and fails
// outright if any line exceeds what is on hand.
func (s *OrderService) Checkout(buyerID string) (int, error) {
	orderedAt := time.Now().Format(validate.DateTimeLayout)
	n, err := s.Orders.Checkout(buyerID, orderedAt, s.DecrementStock)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrEmptyCart
	}
	return n, nil
}

// PlaceOrder is the buy-now path: one unit, no cart, no stock reservation.
func (s *OrderService) PlaceOrder(buyerID, productID string) (*domain.Order, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return nil, err
	}
	o := &domain.Order{
		ID:         uuid.NewString(),
		BuyerID:    buyerID,
		ProductID:  p.ID,
		Quantity:   1,
		TotalPrice: p.Price,
		Status:     domain.OrderOrdered,
		OrderedAt:  time.Now().Format(validate.DateTimeLayout),
	}
	if err := s.Orders.InsertDirect(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) BuyerOrders(buyerID string) ([]repos.OrderRow, error) {
	return s.Orders.ListByBuyer(buyerID)
}

func (s *OrderService) SellerOrders(sellerID string) ([]repos.OrderRow, error) {
	return s.Orders.ListBySeller(sellerID)
}

// statuses each advance target may come from; no moving backwards.
var orderAdvanceFrom = map[string][]string{
	domain.OrderShipped:   {domain.OrderPending, domain.OrderOrdered},
	domain.OrderDelivered: {domain.OrderShipped},
}

// Advance lets the product's seller walk an order through
// pending|ordered -> shipped -> delivered.
func (s *OrderService) Advance(orderID, sellerID, status string) error {
	from, ok := orderAdvanceFrom[status]
	if !ok {
		return ErrBadStatus
	}
	return s.Orders.AdvanceStatus(orderID, sellerID, status, from)
}
