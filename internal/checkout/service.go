package checkout

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/artbazaar/art-bazaar-backend/internal/cart"
	"github.com/artbazaar/art-bazaar-backend/internal/payment"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
	"github.com/google/uuid"
)

var (
	ErrVerificationFailed = errors.New("payment signature verification failed")
	ErrNothingToSettle    = errors.New("no cart items and no existing order for this confirmation")
	ErrInvalidAmount      = errors.New("amount must be a positive rupee value")
)

// Gateway is the slice of the payment client the relay needs.
type Gateway interface {
	CreateOrder(ctx context.Context, amount pricing.Paise, currency, receipt string, notes map[string]string) (payment.GatewayOrder, error)
}

// Settler runs the post-verification transaction: persist the order with
// its items and clear the buyer's cart, atomically. Settlement must be
// idempotent on the gateway payment id.
type Settler interface {
	FindByPaymentID(paymentID string) (int, bool, error)
	Settle(userID int, conf Confirmation, items []pricing.LineItem, totalAmount float64) (Settlement, error)
}

// Service is the payment relay: it owns the one rupee-to-paise conversion,
// the gateway handshake and the post-verification settlement.
type Service struct {
	calc     pricing.Calculator
	gateway  Gateway
	carts    cart.ServiceInterface
	settler  Settler
	secret   string
	currency string
}

func NewService(calc pricing.Calculator, gateway Gateway, carts cart.ServiceInterface, settler Settler, gatewaySecret string) *Service {
	return &Service{
		calc:     calc,
		gateway:  gateway,
		carts:    carts,
		settler:  settler,
		secret:   gatewaySecret,
		currency: "INR",
	}
}

// Quote prices the user's cart server-side. The client renders it but
// never recomputes it.
func (s *Service) Quote(userID int) (Quote, error) {
	items, err := s.carts.Get(userID)
	if err != nil {
		return Quote{}, err
	}

	lines := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.LineItem{
			ArtworkID: it.ArtworkID,
			ArtistID:  it.ArtistID,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}

	totals, err := s.calc.Compute(lines)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Items:       items,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		GrandTotal:  totals.GrandTotal,
		AmountPaise: totals.GrandTotalPaise(),
		Currency:    s.currency,
	}, nil
}

// CreateOrder exchanges a rupee amount for a gateway order. The rupee
// amount is converted to paise here, exactly once; the gateway client
// forwards the paise value untouched. Each call creates a fresh gateway
// order even for identical inputs - an abandoned one just expires.
func (s *Service) CreateOrder(ctx context.Context, amountRupees float64, currency string, notes map[string]string) (payment.GatewayOrder, error) {
	if amountRupees <= 0 || math.IsNaN(amountRupees) || math.IsInf(amountRupees, 0) {
		return payment.GatewayOrder{}, ErrInvalidAmount
	}
	if currency == "" {
		currency = s.currency
	}

	receipt := "rcpt_" + uuid.NewString()
	return s.gateway.CreateOrder(ctx, pricing.ToPaise(amountRupees), currency, receipt, notes)
}

// Verify authenticates a payment confirmation and, on the first valid one,
// settles the checkout: order plus order items persisted and the cart
// cleared in a single transaction. Replaying a valid confirmation answers
// with the order already settled for it.
func (s *Service) Verify(userID int, conf Confirmation) (Settlement, error) {
	if !payment.VerifySignature(s.secret, conf.GatewayOrderID, conf.PaymentID, conf.Signature) {
		// Security event: a confirmation that the gateway did not sign.
		log.Printf("audit: signature verification failed for gateway order %q payment %q (user %d)",
			conf.GatewayOrderID, conf.PaymentID, userID)
		return Settlement{}, ErrVerificationFailed
	}

	if orderID, ok, err := s.settler.FindByPaymentID(conf.PaymentID); err != nil {
		return Settlement{}, err
	} else if ok {
		return Settlement{OrderID: orderID, AlreadySettled: true}, nil
	}

	items, err := s.carts.ItemsForCheckout(userID)
	if err != nil {
		return Settlement{}, err
	}

	totals, err := s.calc.Compute(items)
	if err != nil {
		if err == pricing.ErrEmptyCart {
			return Settlement{}, ErrNothingToSettle
		}
		return Settlement{}, err
	}

	return s.settler.Settle(userID, conf, items, totals.GrandTotal)
}
