package main

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/artbazaar/art-bazaar-backend/internal/artwork"
	"github.com/artbazaar/art-bazaar-backend/internal/cart"
	"github.com/artbazaar/art-bazaar-backend/internal/checkout"
	"github.com/artbazaar/art-bazaar-backend/internal/config"
	"github.com/artbazaar/art-bazaar-backend/internal/order"
	"github.com/artbazaar/art-bazaar-backend/internal/payment"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
	"github.com/artbazaar/art-bazaar-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	bootstrapSchema(db)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Art Bazaar backend is running")
	})

	// user auth
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)
	userHandler.RegisterPublicRoutes(app)

	// artwork catalog
	artworkService := artwork.NewService(artwork.NewPostgresRepository(db))
	artworkHandler := artwork.NewHandler(artworkService)
	artworkHandler.RegisterPublicRoutes(app)

	// cart
	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService)

	// orders (read side; writes happen inside checkout settlement)
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db)))

	// payment relay
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	calc := pricing.NewCalculator(cfg.TaxRate)
	checkoutService := checkout.NewService(calc, gateway, cartService, checkout.NewPostgresSettler(db), cfg.RazorpayKeySecret)
	checkoutHandler := checkout.NewHandler(checkoutService)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// marketplace browsing stays public; everything else needs a token
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return false
			}
			p := c.Path()
			if p == "/" || p == "/api/v1/artworks" {
				return true
			}
			if strings.HasPrefix(p, "/api/v1/artwork/") {
				rest := strings.TrimPrefix(p, "/api/v1/artwork/")
				if _, err := strconv.Atoi(rest); err == nil {
					return true
				}
			}
			return false
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	artworkHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("URL = %s, Method = %s, Duration = %v\n", c.OriginalURL(), c.Method(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            full_name TEXT NOT NULL DEFAULT '',
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS artworks (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT,
            price numeric NOT NULL DEFAULT 0,
            image_url TEXT,
            artist_id INT NOT NULL,
            created_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS cart (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL,
            artwork_id INT NOT NULL,
            quantity INT NOT NULL DEFAULT 1,
            UNIQUE (user_id, artwork_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            buyer_id INT NOT NULL,
            payment_id TEXT NOT NULL UNIQUE,
            gateway_order_id TEXT,
            total_amount numeric NOT NULL DEFAULT 0,
            status TEXT,
            created_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id INT NOT NULL,
            artwork_id INT NOT NULL,
            artist_id INT NOT NULL,
            price numeric NOT NULL DEFAULT 0,
            quantity INT NOT NULL DEFAULT 1
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
