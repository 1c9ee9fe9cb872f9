package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Order is a captured checkout, recorded after PayPal confirms the capture.
type Order struct {
	ID            string    `json:"id"`
	PayPalOrderID string    `json:"paypal_order_id"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderRepository persists captured orders
type OrderRepository struct {
	db *DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert records a captured order
func (r *OrderRepository) Insert(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (id, paypal_order_id, status, amount, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.PayPalOrderID,
		o.Status,
		o.Amount,
		o.Currency,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// List returns captured orders, newest first
func (r *OrderRepository) List(ctx context.Context) ([]Order, error) {
	query := `
		SELECT id, paypal_order_id, status, amount, currency, created_at
		FROM orders
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.PayPalOrderID, &o.Status, &o.Amount, &o.Currency, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
