package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultRazorpayBaseURL is the production Razorpay REST endpoint. Tests
// point it at a local httptest server instead.
const DefaultRazorpayBaseURL = "https://api.razorpay.com"

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string

	// TaxRate is the GST fraction applied on top of the cart subtotal.
	TaxRate float64
}

// Load reads configuration from environment variables. The payment gateway
// credentials, database URL and JWT secret are required: the process must
// refuse to start without them rather than fail on the first checkout.
func Load() (Config, error) {
	cfg := Config{
		Addr:              getEnv("ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", DefaultRazorpayBaseURL),
		TaxRate:           getEnvFloat("TAX_RATE", 0.18),
	}

	missing := []string{}
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.RazorpayKeyID == "" {
		missing = append(missing, "RAZORPAY_KEY_ID")
	}
	if cfg.RazorpayKeySecret == "" {
		missing = append(missing, "RAZORPAY_KEY_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return Config{}, fmt.Errorf("TAX_RATE must be in [0,1), got %v", cfg.TaxRate)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
