package checkout

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/artbazaar/art-bazaar-backend/internal/payment"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
	"github.com/artbazaar/art-bazaar-backend/internal/user"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the payment relay endpoints. Request bodies are decoded
// strictly: unknown fields are rejected at the boundary instead of being
// silently dropped.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout/quote", h.quote)
	app.Post("/create-order", h.createOrder)
	app.Post("/verify", h.verify)
}

type createOrderRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func decodeStrict(c *fiber.Ctx, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *Handler) quote(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	q, err := h.service.Quote(userID)
	if err != nil {
		switch err {
		case pricing.ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(q)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createOrderRequest)
	if err := decodeStrict(c, payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request", "details": err.Error()})
	}

	ord, err := h.service.CreateOrder(c.Context(), payload.Amount, payload.Currency, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, payment.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid amount", "details": err.Error()})
		case errors.Is(err, payment.ErrUnknownCurrency):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported currency", "details": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Order creation failed", "details": err.Error()})
		}
	}

	return c.JSON(ord)
}

func (h *Handler) verify(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(verifyRequest)
	if err := decodeStrict(c, payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.RazorpayOrderID == "" || payload.RazorpayPaymentID == "" || payload.RazorpaySignature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing confirmation fields"})
	}

	settlement, err := h.service.Verify(userID, Confirmation{
		GatewayOrderID: payload.RazorpayOrderID,
		PaymentID:      payload.RazorpayPaymentID,
		Signature:      payload.RazorpaySignature,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrVerificationFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
		case errors.Is(err, ErrNothingToSettle):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"success": true, "orderId": settlement.OrderID})
}
