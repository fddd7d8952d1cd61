package artwork

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const artworkColumns = `id, title, description, price, image_url, artist_id, created_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Artwork, error) {
	rows, err := r.db.Query(`SELECT ` + artworkColumns + ` FROM artworks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArtworks(rows)
}

func (r *PostgresRepository) GetByID(id int) (Artwork, error) {
	var a Artwork
	err := r.db.QueryRow(`SELECT `+artworkColumns+` FROM artworks WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Price, &a.ImageURL, &a.ArtistID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Artwork{}, ErrNotFound
	}
	if err != nil {
		return Artwork{}, err
	}
	return a, nil
}

// ListByIDs returns artworks matching the given ids, ordered according to
// the sequence of ids in the slice.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Artwork, error) {
	if len(ids) == 0 {
		return []Artwork{}, nil
	}

	rows, err := r.db.Query(`SELECT `+artworkColumns+`
        FROM artworks
        WHERE id = ANY($1::int[])
        ORDER BY array_position($1::int[], id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArtworks(rows)
}

func (r *PostgresRepository) ListByArtist(artistID int) ([]Artwork, error) {
	rows, err := r.db.Query(`SELECT `+artworkColumns+` FROM artworks WHERE artist_id = $1 ORDER BY created_at DESC, id DESC`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArtworks(rows)
}

func (r *PostgresRepository) Create(a Artwork) (Artwork, error) {
	err := r.db.QueryRow(`INSERT INTO artworks (title, description, price, image_url, artist_id, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING `+artworkColumns,
		a.Title, a.Description, a.Price, a.ImageURL, a.ArtistID, a.CreatedAt).
		Scan(&a.ID, &a.Title, &a.Description, &a.Price, &a.ImageURL, &a.ArtistID, &a.CreatedAt)
	if err != nil {
		return Artwork{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanArtworks(rows *sql.Rows) ([]Artwork, error) {
	out := make([]Artwork, 0)
	for rows.Next() {
		var a Artwork
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Price, &a.ImageURL, &a.ArtistID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
