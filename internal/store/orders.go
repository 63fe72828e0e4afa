package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-service/internal/apperr"
	"storefront-service/internal/models"
)

// CreateOrderWithItems inserts the order row and all of its line items in a
// single transaction. Partial failure leaves nothing behind.
func (s *Store) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer_name, customer_phone, customer_address, status, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = tx.QueryRowxContext(ctx, query,
		order.CustomerName, order.CustomerPhone, order.CustomerAddress,
		order.Status, order.Total).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO order_items (order_id, product_id, variant_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].VariantID,
			items[i].Quantity, items[i].UnitPrice).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("order %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders retrieves orders newest first. An empty status means no filter.
func (s *Store) ListOrders(ctx context.Context, status models.Status) ([]models.Order, error) {
	orders := []models.Order{}
	if status == "" {
		err := s.db.SelectContext(ctx, &orders,
			"SELECT * FROM orders ORDER BY created_at DESC")
		return orders, err
	}

	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE status = $1 ORDER BY created_at DESC", status)
	return orders, err
}

// GetOrderItems retrieves an order's line items with product and variant
// names resolved for display. Prices come from the stored snapshot, never
// from the joined product row.
func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT oi.*, p.name AS product_name, pv.name AS variant_name
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		LEFT JOIN product_variants pv ON oi.variant_id = pv.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	return items, err
}

// UpdateOrderStatus updates the status field.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status models.Status) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, orderID)
	if err != nil {
		return err
	}
	return requireRow(res, "order %d", orderID)
}

// DeleteOrder removes an order and its line items. Items go first because
// the foreign key has no cascade; both deletes share a transaction.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if err := requireRow(res, "order %d", id); err != nil {
		return err
	}

	return tx.Commit()
}
