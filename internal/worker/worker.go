package worker

import (
	"context"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// NotificationWorker consumes order events and turns new orders into
// seller notifications: a formatted WhatsApp message plus the deep link
// that opens the chat.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	sellerPhone  string
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, sellerPhone string) *NotificationWorker {
	w := &NotificationWorker{
		consumer:    consumer,
		sellerPhone: sellerPhone,
		logger:      util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderCreated(w.handleOrderCreated)
	eventHandler.OnOrderStatusChanged(w.handleStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	message := notify.OrderMessage(event)
	link := notify.Link(w.sellerPhone, message)

	util.NotificationsTotal.WithLabelValues("order_created").Inc()
	w.logger.Info("Seller notification ready",
		zap.Int64("order_id", event.OrderID),
		zap.Float64("total", event.Total),
		zap.String("whatsapp_url", link))

	return nil
}

func (w *NotificationWorker) handleStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	util.NotificationsTotal.WithLabelValues("status_changed").Inc()
	w.logger.Info("Order status changed",
		zap.Int64("order_id", event.OrderID),
		zap.String("from", event.FromStatus.String()),
		zap.String("to", event.ToStatus.String()))

	return nil
}
