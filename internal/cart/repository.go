package cart

import (
	"errors"
	"sync"

	"github.com/artbazaar/art-bazaar-backend/internal/artwork"
)

var (
	ErrNotFound        = errors.New("cart item not found")
	ErrArtworkNotFound = errors.New("artwork not found")
)

// Repository provides access to a user's cart rows. One row per
// (user, artwork) pair; adding the same artwork twice increments the
// existing row's quantity.
type Repository interface {
	Get(userID int) ([]Item, error)
	Add(userID, artworkID, qty int) (Item, error)
	// ChangeQuantity applies a delta to one row; a resulting quantity of
	// zero or below removes the row entirely.
	ChangeQuantity(userID, cartID, delta int) error
	Remove(userID, cartID int) error
	Clear(userID int) error
	Count(userID int) (int, error)
}

// InMemoryRepository backs tests and local scenarios. It resolves artwork
// details from a seeded catalog the way the Postgres repository resolves
// them with a join.
type InMemoryRepository struct {
	mu      sync.RWMutex
	catalog map[int]artwork.Artwork
	rows    map[int][]Item
	nextID  int
}

func NewInMemoryRepository(catalog []artwork.Artwork) *InMemoryRepository {
	r := &InMemoryRepository{
		catalog: make(map[int]artwork.Artwork, len(catalog)),
		rows:    make(map[int][]Item),
		nextID:  1,
	}
	for _, a := range catalog {
		r.catalog[a.ID] = a
	}
	return r
}

func (r *InMemoryRepository) Get(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, len(r.rows[userID]))
	copy(out, r.rows[userID])
	return out, nil
}

func (r *InMemoryRepository) Add(userID, artworkID, qty int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	art, ok := r.catalog[artworkID]
	if !ok {
		return Item{}, ErrArtworkNotFound
	}

	for i, row := range r.rows[userID] {
		if row.ArtworkID == artworkID {
			r.rows[userID][i].Quantity += qty
			return r.rows[userID][i], nil
		}
	}

	item := Item{
		ID:        r.nextID,
		Quantity:  qty,
		ArtworkID: art.ID,
		Title:     art.Title,
		Price:     art.Price,
		ImageURL:  art.ImageURL,
		ArtistID:  art.ArtistID,
	}
	r.nextID++
	r.rows[userID] = append(r.rows[userID], item)
	return item, nil
}

func (r *InMemoryRepository) ChangeQuantity(userID, cartID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows[userID] {
		if row.ID == cartID {
			newQty := row.Quantity + delta
			if newQty <= 0 {
				r.rows[userID] = append(r.rows[userID][:i], r.rows[userID][i+1:]...)
				return nil
			}
			r.rows[userID][i].Quantity = newQty
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Remove(userID, cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows[userID] {
		if row.ID == cartID {
			r.rows[userID] = append(r.rows[userID][:i], r.rows[userID][i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, userID)
	return nil
}

func (r *InMemoryRepository) Count(userID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, row := range r.rows[userID] {
		total += row.Quantity
	}
	return total, nil
}
