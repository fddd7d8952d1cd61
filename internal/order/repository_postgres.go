package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByBuyer(buyerID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT id, buyer_id, payment_id, gateway_order_id, total_amount, status, created_at
        FROM orders
        WHERE buyer_id = $1
        ORDER BY id DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.BuyerID, &ord.PaymentID, &ord.GatewayOrderID, &ord.TotalAmount, &ord.Status, &ord.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(orders, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	var ord Order
	err := r.db.QueryRow(`SELECT id, buyer_id, payment_id, gateway_order_id, total_amount, status, created_at
        FROM orders WHERE id = $1`, id).
		Scan(&ord.ID, &ord.BuyerID, &ord.PaymentID, &ord.GatewayOrderID, &ord.TotalAmount, &ord.Status, &ord.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	orders := []Order{ord}
	if err := r.attachItems(orders, []int{ord.ID}); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) attachItems(orders []Order, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(`SELECT id, order_id, artwork_id, artist_id, price, quantity
        FROM order_items
        WHERE order_id = ANY($1::int[])
        ORDER BY id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	byOrder := make(map[int][]Item)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ArtworkID, &it.ArtistID, &it.Price, &it.Quantity); err != nil {
			return err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}
