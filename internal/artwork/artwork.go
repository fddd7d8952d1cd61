package artwork

// Artwork represents a piece listed on the marketplace and maps to the
// `artworks` table. Image bytes live in external object storage; only the
// hosted URL is kept here.
type Artwork struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ArtistID    int     `json:"artistId"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}
