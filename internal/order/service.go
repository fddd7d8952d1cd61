package order

// Service provides read access to settled orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) ListByBuyer(buyerID int) ([]Order, error) {
	if buyerID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByBuyer(buyerID)
}

func (s *Service) GetByID(id int) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}
