package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const getCartQuery = `
        SELECT c.id, c.quantity, a.id, a.title, a.price, a.image_url, a.artist_id
        FROM cart c
        JOIN artworks a ON a.id = c.artwork_id
        WHERE c.user_id = $1
        ORDER BY c.id
    `

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]Item, error) {
	rows, err := r.db.Query(getCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Quantity, &it.ArtworkID, &it.Title, &it.Price, &it.ImageURL, &it.ArtistID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, artworkID, qty int) (Item, error) {
	var cartID int
	err := r.db.QueryRow(`INSERT INTO cart (user_id, artwork_id, quantity)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, artwork_id) DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
        RETURNING id`, userID, artworkID, qty).Scan(&cartID)
	if err != nil {
		return Item{}, err
	}

	var it Item
	err = r.db.QueryRow(`SELECT c.id, c.quantity, a.id, a.title, a.price, a.image_url, a.artist_id
        FROM cart c JOIN artworks a ON a.id = c.artwork_id
        WHERE c.id = $1`, cartID).
		Scan(&it.ID, &it.Quantity, &it.ArtworkID, &it.Title, &it.Price, &it.ImageURL, &it.ArtistID)
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepository) ChangeQuantity(userID, cartID, delta int) error {
	var qty int
	err := r.db.QueryRow(`SELECT quantity FROM cart WHERE id = $1 AND user_id = $2`, cartID, userID).Scan(&qty)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	newQty := qty + delta
	if newQty <= 0 {
		_, err = r.db.Exec(`DELETE FROM cart WHERE id = $1 AND user_id = $2`, cartID, userID)
		return err
	}
	_, err = r.db.Exec(`UPDATE cart SET quantity = $1 WHERE id = $2 AND user_id = $3`, newQty, cartID, userID)
	return err
}

func (r *PostgresRepository) Remove(userID, cartID int) error {
	res, err := r.db.Exec(`DELETE FROM cart WHERE id = $1 AND user_id = $2`, cartID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresRepository) Count(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COALESCE(SUM(quantity), 0) FROM cart WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
