package order

// Order represents a settled purchase. Rows exist only after a payment
// confirmation passed signature verification; the status therefore starts
// at "paid".
type Order struct {
	ID             int     `json:"orderId"`
	BuyerID        int     `json:"buyerId"`
	PaymentID      string  `json:"paymentId"`
	GatewayOrderID string  `json:"gatewayOrderId"`
	TotalAmount    float64 `json:"totalAmount"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`

	Items []Item `json:"items,omitempty"`
}

// Item is one purchased artwork inside an order, priced as it was at
// checkout time.
type Item struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"orderId"`
	ArtworkID int     `json:"artworkId"`
	ArtistID  int     `json:"artistId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

const StatusPaid = "paid"
