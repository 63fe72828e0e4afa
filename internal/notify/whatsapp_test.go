package notify

import (
	"net/url"
	"strings"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *models.OrderCreatedEvent {
	return &models.OrderCreatedEvent{
		OrderID:       42,
		CustomerName:  "Maria",
		CustomerPhone: "5491187654321",
		Total:         15.98,
		Items: []models.OrderItemData{
			{ProductID: 1, ProductName: "Tamales Artesanales", VariantName: "Pollo", Quantity: 2, UnitPrice: 7.99},
		},
	}
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage(sampleEvent())

	assert.Contains(t, msg, "Nuevo pedido #42")
	assert.Contains(t, msg, "Maria (5491187654321)")
	assert.Contains(t, msg, "2x *Tamales Artesanales (Pollo)* a 7.99")
	assert.Contains(t, msg, "Total: 15.98")
}

func TestOrderMessageWithoutVariant(t *testing.T) {
	ev := sampleEvent()
	ev.Items[0].VariantName = ""

	msg := OrderMessage(ev)
	assert.Contains(t, msg, "2x *Tamales Artesanales* a 7.99")
	assert.NotContains(t, msg, "(Pollo)")
}

func TestLink(t *testing.T) {
	link := Link("5491112345678", "Nuevo pedido #42")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5491112345678?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo pedido #42", u.Query().Get("text"))
}

func TestLinkWithoutPhone(t *testing.T) {
	assert.Empty(t, Link("", "hola"), "no seller phone configured means no link")
}
