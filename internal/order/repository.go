package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

// Repository reads settled orders. Creating them is the checkout
// settlement transaction's job, so no Create is exposed here.
type Repository interface {
	// ListByBuyer returns the buyer's orders, newest first, each with its
	// items attached.
	ListByBuyer(buyerID int) ([]Order, error)
	GetByID(id int) (Order, error)
}

// InMemoryRepository is used by handler tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) ListByBuyer(buyerID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].BuyerID == buyerID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}
