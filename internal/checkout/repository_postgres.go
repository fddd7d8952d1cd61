package checkout

import (
	"database/sql"
	"time"

	"github.com/artbazaar/art-bazaar-backend/internal/order"
	"github.com/artbazaar/art-bazaar-backend/internal/pricing"
)

// PostgresSettler persists a verified checkout in one transaction. The
// UNIQUE constraint on orders.payment_id is what makes settlement
// idempotent: a second insert for the same confirmation hits the conflict
// and the existing order is returned instead.
type PostgresSettler struct {
	db *sql.DB
}

func NewPostgresSettler(db *sql.DB) *PostgresSettler {
	return &PostgresSettler{db: db}
}

func (s *PostgresSettler) FindByPaymentID(paymentID string) (int, bool, error) {
	var id int
	err := s.db.QueryRow(`SELECT id FROM orders WHERE payment_id = $1`, paymentID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *PostgresSettler) Settle(userID int, conf Confirmation, items []pricing.LineItem, totalAmount float64) (Settlement, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Settlement{}, err
	}
	defer tx.Rollback()

	var orderID int
	err = tx.QueryRow(`INSERT INTO orders (buyer_id, payment_id, gateway_order_id, total_amount, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (payment_id) DO NOTHING
        RETURNING id`,
		userID, conf.PaymentID, conf.GatewayOrderID, totalAmount, order.StatusPaid,
		time.Now().UTC().Format(time.RFC3339)).Scan(&orderID)
	if err == sql.ErrNoRows {
		// lost a race with another verify of the same confirmation
		if err := tx.QueryRow(`SELECT id FROM orders WHERE payment_id = $1`, conf.PaymentID).Scan(&orderID); err != nil {
			return Settlement{}, err
		}
		return Settlement{OrderID: orderID, AlreadySettled: true}, nil
	}
	if err != nil {
		return Settlement{}, err
	}

	for _, item := range items {
		if _, err := tx.Exec(`INSERT INTO order_items (order_id, artwork_id, artist_id, price, quantity)
            VALUES ($1,$2,$3,$4,$5)`,
			orderID, item.ArtworkID, item.ArtistID, item.UnitPrice, item.Quantity); err != nil {
			return Settlement{}, err
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart WHERE user_id = $1`, userID); err != nil {
		return Settlement{}, err
	}

	if err := tx.Commit(); err != nil {
		return Settlement{}, err
	}
	return Settlement{OrderID: orderID}, nil
}
