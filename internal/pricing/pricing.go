package pricing

import (
	"errors"
	"math"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidLineItem = errors.New("invalid line item")
)

// DefaultTaxRate is the GST fraction charged on artwork sales.
const DefaultTaxRate = 0.18

// Paise is an amount in the currency's minor unit (1/100 rupee). The
// gateway is only ever handed Paise values, and the sole way to build one
// from a rupee amount is ToPaise, so the rupees-to-paise conversion cannot
// silently happen twice.
type Paise int64

// ToPaise converts a rupee amount to paise, rounding half away from zero.
func ToPaise(rupees float64) Paise {
	return Paise(math.Round(rupees * 100))
}

// Rupees converts back to major units for display.
func (p Paise) Rupees() float64 {
	return float64(p) / 100
}

// LineItem is one cart row at checkout time.
type LineItem struct {
	ArtworkID int     `json:"artworkId"`
	ArtistID  int     `json:"artistId"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Totals is the price breakdown for a checkout attempt, in rupees.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxAmount  float64 `json:"gst"`
	GrandTotal float64 `json:"total"`
}

// GrandTotalPaise converts the grand total to minor units. This is the one
// place in the flow where the conversion happens.
func (t Totals) GrandTotalPaise() Paise {
	return ToPaise(t.GrandTotal)
}

// Calculator derives order totals from cart line items.
type Calculator struct {
	TaxRate float64
}

func NewCalculator(taxRate float64) Calculator {
	return Calculator{TaxRate: taxRate}
}

// Compute sums the line items and applies tax. It never rounds: rounding
// belongs to the minor-unit conversion at the gateway boundary.
func (c Calculator) Compute(items []LineItem) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, ErrEmptyCart
	}

	subtotal := 0.0
	for _, item := range items {
		if item.Quantity < 1 {
			return Totals{}, ErrInvalidLineItem
		}
		if item.UnitPrice < 0 || math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0) {
			return Totals{}, ErrInvalidLineItem
		}
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	tax := subtotal * c.TaxRate
	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		GrandTotal: subtotal + tax,
	}, nil
}
