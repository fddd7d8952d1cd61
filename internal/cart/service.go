package cart

import (
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
)

// ServiceInterface is what checkout needs from the cart: the line items to
// price and a way to know whose cart to read.
type ServiceInterface interface {
	Get(userID int) ([]Item, error)
	Add(userID, artworkID, qty int) (Item, error)
	ChangeQuantity(userID, cartID, delta int) error
	Remove(userID, cartID int) error
	Clear(userID int) error
	Count(userID int) (int, error)
	ItemsForCheckout(userID int) ([]pricing.LineItem, error)
}

// Service orchestrates cart operations.
type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(userID int) ([]Item, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(userID)
}

func (s *Service) Add(userID, artworkID, qty int) (Item, error) {
	if userID <= 0 || artworkID <= 0 || qty < 1 {
		return Item{}, ErrNotFound
	}
	return s.repo.Add(userID, artworkID, qty)
}

func (s *Service) ChangeQuantity(userID, cartID, delta int) error {
	if userID <= 0 || cartID <= 0 {
		return ErrNotFound
	}
	return s.repo.ChangeQuantity(userID, cartID, delta)
}

func (s *Service) Remove(userID, cartID int) error {
	if userID <= 0 || cartID <= 0 {
		return ErrNotFound
	}
	return s.repo.Remove(userID, cartID)
}

func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Clear(userID)
}

func (s *Service) Count(userID int) (int, error) {
	if userID <= 0 {
		return 0, ErrNotFound
	}
	return s.repo.Count(userID)
}

// ItemsForCheckout converts the user's cart rows into pricing line items.
func (s *Service) ItemsForCheckout(userID int) ([]pricing.LineItem, error) {
	items, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	out := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, pricing.LineItem{
			ArtworkID: it.ArtworkID,
			ArtistID:  it.ArtistID,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}
	return out, nil
}
