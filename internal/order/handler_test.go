package order

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeApp(h *Handler) *fiber.App {
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
	h.RegisterProtectedRoutes(app)
	return app
}

func seedOrders() []Order {
	return []Order{
		{
			ID: 1, BuyerID: 42, PaymentID: "pay_001", GatewayOrderID: "order_001",
			TotalAmount: 2360, Status: StatusPaid,
			Items: []Item{{ID: 1, OrderID: 1, ArtworkID: 1, ArtistID: 7, Price: 1000, Quantity: 2}},
		},
		{ID: 2, BuyerID: 99, PaymentID: "pay_002", GatewayOrderID: "order_002", TotalAmount: 590, Status: StatusPaid},
	}
}

func TestGetOrders_OnlyOwn(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(seedOrders()))))

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "42")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var orders []Order
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order for buyer 42, got %d", len(orders))
	}
	if orders[0].PaymentID != "pay_001" || len(orders[0].Items) != 1 {
		t.Errorf("unexpected order %+v", orders[0])
	}
}

func TestGetOrders_Unauthorized(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(nil))))

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, _ := app.Test(req, -1)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestGetOrder_HidesOtherBuyers(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(seedOrders()))))

	// own order
	req := httptest.NewRequest("GET", "/api/v1/order/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req, -1)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for own order, got %d", res.StatusCode)
	}

	// someone else's order must look like it does not exist
	req2 := httptest.NewRequest("GET", "/api/v1/order/2", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2, -1)
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for another buyer's order, got %d", res2.StatusCode)
	}
}
