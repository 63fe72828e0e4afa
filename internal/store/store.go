package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		image TEXT,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS product_variants (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		extra_price NUMERIC(10,2) NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_address TEXT,
		status TEXT NOT NULL DEFAULT 'pendiente',
		total NUMERIC(10,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		variant_id BIGINT REFERENCES product_variants(id),
		quantity INTEGER NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_variants_product_id ON product_variants(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)`,
}

// Migrate runs the idempotent schema statements. Called once at process
// start, before any service is constructed.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

type seedProduct struct {
	name        string
	description string
	price       float64
	image       string
	stock       int
	variants    []string
}

var seedCatalog = []seedProduct{
	{
		name:        "Tamales Artesanales",
		description: "Tamales caseros preparados con masa de maiz tradicional.",
		price:       7.99,
		image:       "https://images.unsplash.com/photo-1617118602627-65c3fc1eb1f5?q=80&w=600&auto=format",
		stock:       50,
		variants:    []string{"Chancho", "Pollo"},
	},
	{
		name:        "Jugo Natural",
		description: "Jugo fresco de frutas de temporada, sin azucar anadida.",
		price:       4.99,
		image:       "https://images.unsplash.com/photo-1600271886742-f049cd451bba?q=80&w=600&auto=format",
		stock:       30,
		variants:    []string{"Naranja", "Pina", "Fresa"},
	},
	{
		name:        "Lasagna Tradicional",
		description: "Lasagna de carne con salsa casera y queso gratinado.",
		price:       12.99,
		image:       "https://images.unsplash.com/photo-1619895092538-128341789043?q=80&w=600&auto=format",
		stock:       15,
	},
}

// Seed inserts the sample catalog when the products table is empty.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM products"); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range seedCatalog {
		var productID int64
		err := s.db.GetContext(ctx, &productID,
			`INSERT INTO products (name, description, price, image, stock)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			p.name, p.description, p.price, p.image, p.stock)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}

		for _, v := range p.variants {
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO product_variants (product_id, name, extra_price, stock)
				 VALUES ($1, $2, 0, $3)`,
				productID, v, p.stock/len(p.variants))
			if err != nil {
				return fmt.Errorf("failed to seed variant %q: %w", v, err)
			}
		}
	}

	return nil
}
