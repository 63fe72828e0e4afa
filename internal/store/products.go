package store

import (
	"context"
	"database/sql"
	"errors"

	"storefront-service/internal/apperr"
	"storefront-service/internal/models"
)

// ProductSort selects the listing order for products.
type ProductSort string

const (
	// SortByName lists alphabetically, used by the general catalog listing.
	SortByName ProductSort = "name"
	// SortByRecent lists newest first, used by the featured listing.
	SortByRecent ProductSort = "recent"
)

// ListProducts retrieves products, optionally restricted to in-stock rows.
// limit <= 0 means no limit.
func (s *Store) ListProducts(ctx context.Context, inStockOnly bool, sort ProductSort, limit int) ([]models.Product, error) {
	query := "SELECT * FROM products"
	if inStockOnly {
		query += " WHERE stock > 0"
	}

	switch sort {
	case SortByRecent:
		query += " ORDER BY created_at DESC"
	default:
		query += " ORDER BY name ASC"
	}

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("product %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a product and fills in the generated id and
// creation timestamp.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, image, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.Stock).Scan(&p.ID, &p.CreatedAt)
}

// UpdateProduct updates all mutable product fields.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3, image = $4, stock = $5 WHERE id = $6`,
		p.Name, p.Description, p.Price, p.Image, p.Stock, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "product %d", p.ID)
}

// DeleteProduct removes a product. Variants go with it via the
// ON DELETE CASCADE constraint.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "product %d", id)
}

// ListVariantsByProduct retrieves a product's variants ordered by name.
func (s *Store) ListVariantsByProduct(ctx context.Context, productID int64) ([]models.Variant, error) {
	variants := []models.Variant{}
	err := s.db.SelectContext(ctx, &variants,
		"SELECT * FROM product_variants WHERE product_id = $1 ORDER BY name", productID)
	return variants, err
}

// ListVariantIDs retrieves the ids of a product's variants, used by the
// variant reconciliation diff.
func (s *Store) ListVariantIDs(ctx context.Context, productID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.SelectContext(ctx, &ids,
		"SELECT id FROM product_variants WHERE product_id = $1", productID)
	return ids, err
}

// CreateVariant inserts a variant and fills in the generated id and
// creation timestamp.
func (s *Store) CreateVariant(ctx context.Context, v *models.Variant) error {
	query := `
		INSERT INTO product_variants (product_id, name, extra_price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.QueryRowxContext(ctx, query,
		v.ProductID, v.Name, v.ExtraPrice, v.Stock).Scan(&v.ID, &v.CreatedAt)
}

// UpdateVariant updates a variant in place, keeping its identity and
// creation timestamp.
func (s *Store) UpdateVariant(ctx context.Context, v *models.Variant) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE product_variants SET name = $1, extra_price = $2, stock = $3 WHERE id = $4`,
		v.Name, v.ExtraPrice, v.Stock, v.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "variant %d", v.ID)
}

// DeleteVariant removes a single variant.
func (s *Store) DeleteVariant(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM product_variants WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "variant %d", id)
}

// Stats returns the admin dashboard counters.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM products) AS total_products,
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COUNT(*) FROM orders WHERE status = $1) AS pending_orders`,
		models.StatusPending)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// requireRow converts a zero-row result into a not-found error.
func requireRow(res sql.Result, format string, args ...interface{}) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFoundf(format, args...)
	}
	return nil
}
