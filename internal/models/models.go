package models

import "time"

// Product represents a catalog item
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Image       *string   `db:"image" json:"image"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Variants    []Variant `db:"-" json:"variants,omitempty"`
}

// HasVariants reports whether selecting a purchase option is mandatory
// for this product.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// Variant represents a purchase option of a product (e.g. a flavor).
// Its price is added to the product's base price, and its stock is
// tracked independently of the parent product's stock.
type Variant struct {
	ID         int64     `db:"id" json:"id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	Name       string    `db:"name" json:"name"`
	ExtraPrice float64   `db:"extra_price" json:"extra_price"`
	Stock      int       `db:"stock" json:"stock"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Order represents a customer order. JSON tags keep the Spanish wire
// vocabulary of the storefront checkout.
type Order struct {
	ID              int64       `db:"id" json:"id"`
	CustomerName    string      `db:"customer_name" json:"cliente_nombre"`
	CustomerPhone   string      `db:"customer_phone" json:"cliente_telefono"`
	CustomerAddress *string     `db:"customer_address" json:"cliente_direccion"`
	Status          Status      `db:"status" json:"estado"`
	Total           float64     `db:"total" json:"total"`
	CreatedAt       time.Time   `db:"created_at" json:"creado_en"`
	Items           []OrderItem `db:"-" json:"items"`
}

// OrderItem is one product/variant selection within an order. UnitPrice is a
// snapshot taken at order time and is never re-read from the live catalog.
// ProductName and VariantName are resolved via join at read time for display.
type OrderItem struct {
	ID          int64   `db:"id" json:"id"`
	OrderID     int64   `db:"order_id" json:"pedido_id"`
	ProductID   int64   `db:"product_id" json:"producto_id"`
	VariantID   *int64  `db:"variant_id" json:"producto_tipo_id"`
	Quantity    int     `db:"quantity" json:"cantidad"`
	UnitPrice   float64 `db:"unit_price" json:"precio"`
	ProductName *string `db:"product_name" json:"producto_nombre,omitempty"`
	VariantName *string `db:"variant_name" json:"producto_tipo,omitempty"`
}

// Stats holds the admin dashboard counters.
type Stats struct {
	TotalProducts int64 `db:"total_products" json:"total_productos"`
	TotalOrders   int64 `db:"total_orders" json:"total_pedidos"`
	PendingOrders int64 `db:"pending_orders" json:"pedidos_pendientes"`
}
