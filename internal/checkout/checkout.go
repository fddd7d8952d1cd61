package checkout

import (
	"github.com/artbazaar/art-bazaar-backend/internal/cart"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
)

// Confirmation is the payment callback the gateway hands the client after
// the buyer completes payment. It is consumed exactly once: the first
// verified confirmation settles the checkout, later replays are answered
// from the existing order.
type Confirmation struct {
	GatewayOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}

// Quote is the server-computed price breakdown for a user's cart.
type Quote struct {
	Items       []cart.Item   `json:"items"`
	Subtotal    float64       `json:"subtotal"`
	TaxAmount   float64       `json:"gst"`
	GrandTotal  float64       `json:"total"`
	AmountPaise pricing.Paise `json:"amountPaise"`
	Currency    string        `json:"currency"`
}

// Settlement reports the outcome of the post-verification transaction.
type Settlement struct {
	OrderID        int
	AlreadySettled bool
}
