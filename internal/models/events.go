package models

import "time"

// Event types
const (
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when a customer places an order. It carries
// everything the notification worker needs to format the seller message
// without reading the database again.
type OrderCreatedEvent struct {
	BaseEvent
	OrderID       int64           `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Total         float64         `json:"total"`
	Items         []OrderItemData `json:"items"`
}

// OrderStatusChangedEvent published when the admin moves an order along
// the status chain.
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    int64  `json:"order_id"`
	FromStatus Status `json:"from_status"`
	ToStatus   Status `json:"to_status"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
