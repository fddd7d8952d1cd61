package artwork

import (
	"errors"
	"sync"
)

var (
	ErrNotFound  = errors.New("artwork not found")
	ErrForbidden = errors.New("artwork belongs to another artist")
)

type Repository interface {
	List() ([]Artwork, error)
	GetByID(id int) (Artwork, error)
	// ListByIDs returns the artworks whose id is present in the provided
	// slice, ordered the same way as the ids argument. An empty slice
	// returns an empty result without touching the database.
	ListByIDs(ids []int) ([]Artwork, error)
	ListByArtist(artistID int) ([]Artwork, error)
	Create(a Artwork) (Artwork, error)
	Delete(id int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Artwork
	nextID  int
}

func NewInMemoryRepository(seed []Artwork) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Artwork, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, a := range seed {
		r.storage = append(r.storage, a)
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Artwork, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if a.ID == id {
			return a, nil
		}
	}
	return Artwork{}, ErrNotFound
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Artwork, 0, len(ids))
	for _, id := range ids {
		for _, a := range r.storage {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByArtist(artistID int) ([]Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Artwork, 0)
	for _, a := range r.storage {
		if a.ArtistID == artistID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(a Artwork) (Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
