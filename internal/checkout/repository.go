package checkout

import (
	"sync"

	"github.com/artbazaar/art-bazaar-backend/internal/order"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
)

// InMemorySettler backs tests and local scenarios. Like the Postgres
// settler it is idempotent on the payment id.
type InMemorySettler struct {
	mu     sync.Mutex
	orders map[string]order.Order
	nextID int

	// ClearCart, when set, empties the buyer's cart as part of
	// settlement, mirroring the DELETE the Postgres settler runs in its
	// transaction.
	ClearCart func(userID int) error
}

func NewInMemorySettler() *InMemorySettler {
	return &InMemorySettler{
		orders: make(map[string]order.Order),
		nextID: 1,
	}
}

func (s *InMemorySettler) FindByPaymentID(paymentID string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ord, ok := s.orders[paymentID]; ok {
		return ord.ID, true, nil
	}
	return 0, false, nil
}

func (s *InMemorySettler) Settle(userID int, conf Confirmation, items []pricing.LineItem, totalAmount float64) (Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ord, ok := s.orders[conf.PaymentID]; ok {
		return Settlement{OrderID: ord.ID, AlreadySettled: true}, nil
	}

	ord := order.Order{
		ID:             s.nextID,
		BuyerID:        userID,
		PaymentID:      conf.PaymentID,
		GatewayOrderID: conf.GatewayOrderID,
		TotalAmount:    totalAmount,
		Status:         order.StatusPaid,
	}
	s.nextID++
	for _, item := range items {
		ord.Items = append(ord.Items, order.Item{
			OrderID:   ord.ID,
			ArtworkID: item.ArtworkID,
			ArtistID:  item.ArtistID,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	s.orders[conf.PaymentID] = ord

	if s.ClearCart != nil {
		if err := s.ClearCart(userID); err != nil {
			return Settlement{}, err
		}
	}
	return Settlement{OrderID: ord.ID}, nil
}

// SettledOrders exposes the persisted orders for assertions.
func (s *InMemorySettler) SettledOrders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.Order, 0, len(s.orders))
	for _, ord := range s.orders {
		out = append(out, ord)
	}
	return out
}
