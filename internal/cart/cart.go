package cart

// Item is one cart row joined with the artwork it references.
type Item struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`

	ArtworkID int     `json:"artworkId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	ArtistID  int     `json:"artistId"`
}

// ItemTotal is the row's price contribution in rupees.
func (i Item) ItemTotal() float64 {
	return i.Price * float64(i.Quantity)
}
