package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plateworks/storefront/internal/model"
)

// OrderRepository persists finalized orders. A thin insert; order management
// beyond receipt is out of scope.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a finalized order.
func (o *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode order lines: %w", err)
	}

	_, err = o.pool.Exec(ctx, `
		INSERT INTO orders (id, restaurant_id, session_id, customer_id, lines,
		                    item_count, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.RestaurantID, order.SessionID, order.CustomerID, lines,
		order.ItemCount, order.Total, order.Status, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}
