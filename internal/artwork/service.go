package artwork

import "errors"

var ErrInvalidArtwork = errors.New("artwork needs a title and a non-negative price")

// ServiceInterface lets other packages (checkout, order enrichment) depend
// on the artwork service without importing the concrete type.
type ServiceInterface interface {
	List() ([]Artwork, error)
	GetByID(id int) (Artwork, error)
	ListByIDs(ids []int) ([]Artwork, error)
	ListByArtist(artistID int) ([]Artwork, error)
	Create(a Artwork) (Artwork, error)
	Delete(id int, artistID int) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Artwork, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Artwork, error) {
	if id <= 0 {
		return Artwork{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Artwork, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) ListByArtist(artistID int) ([]Artwork, error) {
	if artistID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByArtist(artistID)
}

func (s *Service) Create(a Artwork) (Artwork, error) {
	if a.Title == "" || a.Price < 0 || a.ArtistID <= 0 {
		return Artwork{}, ErrInvalidArtwork
	}
	return s.repo.Create(a)
}

// Delete removes an artwork only if it belongs to the requesting artist.
func (s *Service) Delete(id int, artistID int) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.ArtistID != artistID {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
