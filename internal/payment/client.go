package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number of paise")
	ErrUnknownCurrency    = errors.New("unsupported currency")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// supportedCurrencies lists the ISO 4217 codes the store sells in.
var supportedCurrencies = map[string]bool{
	"INR": true,
}

// GatewayOrder is the order object issued by Razorpay. Immutable once
// created; an abandoned one simply expires unused.
type GatewayOrder struct {
	ID       string        `json:"id"`
	Amount   pricing.Paise `json:"amount"`
	Currency string        `json:"currency"`
	Receipt  string        `json:"receipt,omitempty"`
	Status   string        `json:"status,omitempty"`
}

// Client talks to the Razorpay orders API with the merchant credentials.
// The key secret stays inside this process and is never echoed to clients.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a gateway client with a bounded timeout so a stalled
// gateway surfaces as an error instead of hanging the checkout.
func NewClient(keyID, keySecret, baseURL string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder asks the gateway for a new order over exactly the given
// amount. The amount is forwarded verbatim; no rescaling happens here.
// Every successful call creates one billable order on the gateway, so the
// caller must invoke it at most once per checkout attempt and must not
// retry failures automatically.
func (c *Client) CreateOrder(ctx context.Context, amount pricing.Paise, currency, receipt string, notes map[string]string) (GatewayOrder, error) {
	if amount <= 0 {
		return GatewayOrder{}, ErrInvalidAmount
	}
	if !supportedCurrencies[currency] {
		return GatewayOrder{}, ErrUnknownCurrency
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   int64(amount),
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return GatewayOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return GatewayOrder{}, fmt.Errorf("%w: status %d: %s", ErrGatewayUnavailable, res.StatusCode, detail)
	}

	var ord GatewayOrder
	if err := json.NewDecoder(res.Body).Decode(&ord); err != nil {
		return GatewayOrder{}, fmt.Errorf("%w: malformed response: %v", ErrGatewayUnavailable, err)
	}
	if ord.ID == "" {
		return GatewayOrder{}, fmt.Errorf("%w: response missing order id", ErrGatewayUnavailable)
	}

	return ord, nil
}
