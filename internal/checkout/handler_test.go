package checkout

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/artbazaar/art-bazaar-backend/internal/artwork"
	"github.com/artbazaar/art-bazaar-backend/internal/cart"
	"github.com/artbazaar/art-bazaar-backend/internal/payment"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "testsecret"

// stubGateway records calls and mints sequential order ids, echoing the
// amount back the way Razorpay does.
type stubGateway struct {
	calls   int
	amounts []pricing.Paise
}

func (g *stubGateway) CreateOrder(ctx context.Context, amount pricing.Paise, currency, receipt string, notes map[string]string) (payment.GatewayOrder, error) {
	g.calls++
	g.amounts = append(g.amounts, amount)
	return payment.GatewayOrder{
		ID:       fmt.Sprintf("order_%03d", g.calls),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fixture struct {
	app     *fiber.App
	gateway *stubGateway
	carts   *cart.Service
	settler *InMemorySettler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := []artwork.Artwork{
		{ID: 1, Title: "Sunset", Price: 1000, ArtistID: 7},
		{ID: 2, Title: "Monsoon", Price: 499.5, ArtistID: 8},
	}
	cartService := cart.NewService(cart.NewInMemoryRepository(catalog))

	gateway := &stubGateway{}
	settler := NewInMemorySettler()
	settler.ClearCart = cartService.Clear

	service := NewService(pricing.NewCalculator(pricing.DefaultTaxRate), gateway, cartService, settler, testSecret)
	handler := NewHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)

	return &fixture{app: app, gateway: gateway, carts: cartService, settler: settler}
}

func TestQuote(t *testing.T) {
	f := newFixture(t)
	if _, err := f.carts.Add(42, 1, 2); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/v1/checkout/quote", nil)
	req.Header.Set("X-User-ID", "42")
	res, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var q Quote
	if err := json.NewDecoder(res.Body).Decode(&q); err != nil {
		t.Fatal(err)
	}
	if q.Subtotal != 2000 {
		t.Errorf("expected subtotal 2000, got %v", q.Subtotal)
	}
	if q.TaxAmount != 360 {
		t.Errorf("expected gst 360, got %v", q.TaxAmount)
	}
	if q.GrandTotal != 2360 {
		t.Errorf("expected total 2360, got %v", q.GrandTotal)
	}
	if q.AmountPaise != 236000 {
		t.Errorf("expected 236000 paise, got %d", q.AmountPaise)
	}
	if q.Currency != "INR" {
		t.Errorf("expected INR, got %q", q.Currency)
	}
}

func TestQuote_EmptyCart(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("GET", "/api/v1/checkout/quote", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}
	if f.gateway.calls != 0 {
		t.Errorf("gateway must not be called for an empty cart")
	}
}

func TestCreateOrder_ConvertsToPaiseExactlyOnce(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("POST", "/create-order", bytes.NewReader([]byte(`{"amount":2360,"currency":"INR"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	if len(f.gateway.amounts) != 1 || f.gateway.amounts[0] != 236000 {
		t.Fatalf("gateway received %v, want exactly one call with 236000 paise", f.gateway.amounts)
	}

	var ord payment.GatewayOrder
	if err := json.NewDecoder(res.Body).Decode(&ord); err != nil {
		t.Fatal(err)
	}
	if ord.Amount != 236000 {
		t.Errorf("response echoed %d paise, want 236000", ord.Amount)
	}
	if ord.ID == "" {
		t.Error("response missing gateway order id")
	}
}

func TestCreateOrder_NoDeduplication(t *testing.T) {
	f := newFixture(t)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/create-order", bytes.NewReader([]byte(`{"amount":2360}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "42")
		res, err := f.app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", res.StatusCode)
		}
		var ord payment.GatewayOrder
		json.NewDecoder(res.Body).Decode(&ord)
		ids = append(ids, ord.ID)
	}

	if f.gateway.calls != 2 {
		t.Errorf("expected 2 gateway calls, got %d", f.gateway.calls)
	}
	if ids[0] == ids[1] {
		t.Errorf("identical inputs must produce distinct gateway orders, both %q", ids[0])
	}
}

func TestCreateOrder_InvalidAmount(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`} {
		req := httptest.NewRequest("POST", "/create-order", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "42")
		res, _ := f.app.Test(req, -1)
		if res.StatusCode != fiber.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, res.StatusCode)
		}
	}
	if f.gateway.calls != 0 {
		t.Errorf("gateway must not be called for invalid amounts")
	}
}

func TestCreateOrder_RejectsUnknownFields(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("POST", "/create-order", bytes.NewReader([]byte(`{"amount":2360,"discount":99}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", res.StatusCode)
	}
	if f.gateway.calls != 0 {
		t.Errorf("gateway must not be called for a malformed request")
	}
}

func TestCreateOrder_Unauthorized(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("POST", "/create-order", bytes.NewReader([]byte(`{"amount":2360}`)))
	req.Header.Set("Content-Type", "application/json")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func verifyBody(orderID, paymentID, signature string) string {
	b, _ := json.Marshal(map[string]string{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	})
	return string(b)
}

func TestVerify_SettlesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.carts.Add(42, 1, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := f.carts.Add(42, 2, 1); err != nil {
		t.Fatal(err)
	}

	body := verifyBody("order_001", "pay_001", sign("order_001", "pay_001"))
	req := httptest.NewRequest("POST", "/verify", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out struct {
		Success bool `json:"success"`
		OrderID int  `json:"orderId"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Success {
		t.Fatal("expected success=true")
	}
	if out.OrderID == 0 {
		t.Fatal("expected a settled order id")
	}

	orders := f.settler.SettledOrders()
	if len(orders) != 1 {
		t.Fatalf("expected exactly one settled order, got %d", len(orders))
	}
	ord := orders[0]
	if ord.BuyerID != 42 || ord.PaymentID != "pay_001" || ord.Status != "paid" {
		t.Errorf("unexpected order %+v", ord)
	}
	// 1000*2 + 499.5 = 2499.5; *1.18 = 2949.41
	if ord.TotalAmount < 2949.40 || ord.TotalAmount > 2949.42 {
		t.Errorf("unexpected total %v", ord.TotalAmount)
	}
	if len(ord.Items) != 2 {
		t.Errorf("expected 2 order items, got %d", len(ord.Items))
	}

	items, _ := f.carts.Get(42)
	if len(items) != 0 {
		t.Errorf("expected cart cleared after settlement, got %d items", len(items))
	}
}

func TestVerify_IdempotentOnReplay(t *testing.T) {
	f := newFixture(t)
	if _, err := f.carts.Add(42, 1, 2); err != nil {
		t.Fatal(err)
	}

	body := verifyBody("order_001", "pay_001", sign("order_001", "pay_001"))
	var firstOrderID int
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/verify", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "42")
		res, err := f.app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, res.StatusCode)
		}
		var out struct {
			Success bool `json:"success"`
			OrderID int  `json:"orderId"`
		}
		json.NewDecoder(res.Body).Decode(&out)
		if !out.Success {
			t.Fatalf("attempt %d: expected success=true", i+1)
		}
		if i == 0 {
			firstOrderID = out.OrderID
		} else if out.OrderID != firstOrderID {
			t.Errorf("replay settled a different order: %d vs %d", out.OrderID, firstOrderID)
		}
	}

	if n := len(f.settler.SettledOrders()); n != 1 {
		t.Errorf("expected at most one order row after replay, got %d", n)
	}
}

func TestVerify_BadSignature(t *testing.T) {
	f := newFixture(t)
	if _, err := f.carts.Add(42, 1, 2); err != nil {
		t.Fatal(err)
	}

	body := verifyBody("order_001", "pay_001", sign("order_001", "pay_tampered"))
	req := httptest.NewRequest("POST", "/verify", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad signature, got %d", res.StatusCode)
	}

	if n := len(f.settler.SettledOrders()); n != 0 {
		t.Errorf("no order may be created on verification failure, got %d", n)
	}
	items, _ := f.carts.Get(42)
	if len(items) != 1 {
		t.Errorf("cart must stay untouched on verification failure, got %d items", len(items))
	}
}

func TestVerify_MissingFields(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("POST", "/verify", bytes.NewReader([]byte(`{"razorpay_order_id":"order_001"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", res.StatusCode)
	}
}

func TestVerify_EmptyCartNothingToSettle(t *testing.T) {
	f := newFixture(t)

	body := verifyBody("order_001", "pay_001", sign("order_001", "pay_001"))
	req := httptest.NewRequest("POST", "/verify", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 when there is nothing to settle, got %d", res.StatusCode)
	}
}
