package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"storefront-service/internal/apperr"
	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// totalTolerance absorbs float rounding when checking the stated total
// against the line items. Anything off by a cent or more is rejected.
const totalTolerance = 0.005

// OrderService handles checkout and the admin order lifecycle.
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	sellerPhone    string
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, eventPublisher *broker.EventPublisher, sellerPhone string) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		sellerPhone:    sellerPhone,
		logger:         util.GetLogger(),
	}
}

// CreateOrderRequest is the checkout payload, in the storefront's Spanish
// wire vocabulary.
type CreateOrderRequest struct {
	CustomerName    string             `json:"cliente_nombre"`
	CustomerPhone   string             `json:"cliente_telefono"`
	CustomerAddress *string            `json:"cliente_direccion"`
	Total           float64            `json:"total"`
	Items           []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one line of the checkout payload. Precio is the unit
// price the customer saw; it is stored as a snapshot, not re-read from the
// catalog.
type OrderItemRequest struct {
	ProductID int64   `json:"producto_id"`
	VariantID *int64  `json:"producto_tipo_id"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio"`
}

// CreateOrderResponse carries the new order id and the pre-addressed seller
// chat link the storefront opens after checkout.
type CreateOrderResponse struct {
	ID          int64         `json:"id"`
	Status      models.Status `json:"estado"`
	WhatsAppURL string        `json:"whatsapp_url,omitempty"`
}

// CreateOrder validates the checkout payload and writes the order with its
// line items in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if err := validateOrderRequest(req); err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_request").Inc()
		return nil, err
	}

	eventItems, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_items").Inc()
		return nil, err
	}

	order := &models.Order{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: req.CustomerAddress,
		Status:          models.StatusPending,
		Total:           req.Total,
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	if err := s.store.CreateOrderWithItems(ctx, order, items); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(items)))

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Total:         order.Total,
		Items:         eventItems,
	}

	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	return &CreateOrderResponse{
		ID:          order.ID,
		Status:      order.Status,
		WhatsAppURL: notify.Link(s.sellerPhone, notify.OrderMessage(event)),
	}, nil
}

// GetOrder returns an order with its display-ready line items.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	order.Items = items

	return order, nil
}

// ListOrders returns orders newest first, each with its line items. The
// filter is an exact status match; empty or "all" passes everything through.
func (s *OrderService) ListOrders(ctx context.Context, statusFilter string) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	var status models.Status
	if statusFilter != "" && statusFilter != "all" {
		status = models.Status(statusFilter)
		if !status.Valid() {
			return nil, apperr.Validationf("unknown status %q", statusFilter)
		}
	}

	orders, err := s.store.ListOrders(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		items, err := s.store.GetOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load items for order %d: %w", orders[i].ID, err)
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateStatus moves an order along the status chain. Unknown values and
// backward transitions are rejected; re-applying the current status succeeds
// without a write.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, newStatus models.Status) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if !newStatus.Valid() {
		return nil, apperr.Validationf("unknown status %q", newStatus)
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, apperr.Validationf("cannot move order from %s to %s", order.Status, newStatus)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	util.StatusTransitionsTotal.WithLabelValues(order.Status.String(), newStatus.String()).Inc()
	s.logger.Info("Order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", order.Status.String()),
		zap.String("to", newStatus.String()))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:    orderID,
		FromStatus: order.Status,
		ToStatus:   newStatus,
	}
	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	order.Status = newStatus
	return order, nil
}

// DeleteOrder removes an order and its line items.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	ctx, span := util.StartSpan(ctx, "OrderService.DeleteOrder")
	defer span.End()

	if err := s.store.DeleteOrder(ctx, orderID); err != nil {
		return err
	}

	s.logger.Info("Order deleted", zap.Int64("order_id", orderID))
	return nil
}

// resolveItems checks that every referenced product (and variant, when
// given) exists and returns the name-carrying item data for the
// notification event.
func (s *OrderService) resolveItems(ctx context.Context, items []OrderItemRequest) ([]models.OrderItemData, error) {
	resolved := make([]models.OrderItemData, 0, len(items))

	for _, item := range items {
		product, err := s.store.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.Validationf("product %d does not exist", item.ProductID)
			}
			return nil, err
		}

		data := models.OrderItemData{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}

		if item.VariantID != nil {
			variants, err := s.store.ListVariantsByProduct(ctx, product.ID)
			if err != nil {
				return nil, err
			}
			found := false
			for _, v := range variants {
				if v.ID == *item.VariantID {
					data.VariantName = v.Name
					found = true
					break
				}
			}
			if !found {
				return nil, apperr.Validationf("variant %d does not belong to product %d", *item.VariantID, product.ID)
			}
		}

		resolved = append(resolved, data)
	}

	return resolved, nil
}

// validateOrderRequest applies the checkout constraints: customer name and
// phone, at least one item with quantity >= 1, a positive total, and a total
// that matches the line items.
func validateOrderRequest(req *CreateOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return apperr.Validationf("cliente_nombre is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return apperr.Validationf("cliente_telefono is required")
	}
	if len(req.Items) == 0 {
		return apperr.Validationf("an order needs at least one item")
	}
	if req.Total <= 0 {
		return apperr.Validationf("total must be positive")
	}

	var sum float64
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return apperr.Validationf("item %d: cantidad must be at least 1", i+1)
		}
		if item.UnitPrice < 0 {
			return apperr.Validationf("item %d: precio must not be negative", i+1)
		}
		sum += item.UnitPrice * float64(item.Quantity)
	}

	if math.Abs(sum-req.Total) >= totalTolerance {
		return apperr.Validationf("total %.2f does not match item sum %.2f", req.Total, sum)
	}

	return nil
}
