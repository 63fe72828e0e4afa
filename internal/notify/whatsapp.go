// Package notify formats seller-facing WhatsApp messages and deep links.
// It holds no state; order placement is routed to the seller as a
// pre-addressed chat link.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"storefront-service/internal/models"
)

// Link builds a wa.me deep link that opens a chat with phone and the given
// message prefilled. Phone is in international format without the plus sign.
func Link(phone, message string) string {
	if phone == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

// OrderMessage formats an order notification for the seller: one line per
// item with quantity, variant and unit price, then the total.
func OrderMessage(ev *models.OrderCreatedEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Nuevo pedido #%d\n", ev.OrderID)
	fmt.Fprintf(&b, "Cliente: %s (%s)\n\n", ev.CustomerName, ev.CustomerPhone)

	for _, item := range ev.Items {
		name := item.ProductName
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}
		fmt.Fprintf(&b, "- %dx *%s* a %.2f\n", item.Quantity, name, item.UnitPrice)
	}

	fmt.Fprintf(&b, "\nTotal: %.2f", ev.Total)
	return b.String()
}
