package utils

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nilamroots/nilamroots-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	return models.Order{
		ID:            1234567,
		CustomerName:  "Asha",
		PhoneNumber:   "9000000000",
		Address:       "12 MG Road",
		Items:         []models.OrderItem{{ProductID: 1, Name: "Hair Oil", Price: 549, Quantity: 2}},
		TotalAmount:   1098,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
	}
}

func TestShortOrderID(t *testing.T) {
	assert.Equal(t, "234567", ShortOrderID(sampleOrder()))
	assert.Equal(t, "42", ShortOrderID(models.Order{ID: 42}))
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage(sampleOrder())

	assert.True(t, strings.HasPrefix(msg, "*New order received!*"))
	assert.Contains(t, msg, "*Name:* Asha")
	assert.Contains(t, msg, "*Items:* Hair Oil (x2)")
	assert.Contains(t, msg, "*Total:* ₹1098")
	assert.Contains(t, msg, "*Payment:* Cash on Delivery (COD)")
	assert.Contains(t, msg, "*Order ID:* #234567")
}

func TestOrderMessage_OnlinePayment(t *testing.T) {
	order := sampleOrder()
	txn := "pay_abc"
	order.PaymentMethod = models.PaymentMethodOnline
	order.PaymentStatus = models.PaymentStatusPaid
	order.TransactionID = &txn

	assert.Contains(t, OrderMessage(order), "*Payment:* Online Payment (Paid, txn pay_abc)")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("", sampleOrder())

	require.True(t, strings.HasPrefix(link, "https://wa.me/"+DefaultWhatsAppNumber+"?text="))
	assert.NotContains(t, link, "+")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, OrderMessage(sampleOrder()), parsed.Query().Get("text"))

	assert.True(t, strings.HasPrefix(WhatsAppLink("911234567890", sampleOrder()), "https://wa.me/911234567890?"))
}

func TestRenderTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.html")
	require.NoError(t, os.WriteFile(path, []byte(`<h1>Order #{{.ShortID}}</h1><a href="{{.WhatsAppURL}}">open</a>`), 0o644))

	body, err := RenderTemplate(path, OrderEmailData{ShortID: "000042", WhatsAppURL: "https://wa.me/1?text=hi"})
	require.NoError(t, err)
	assert.Contains(t, body, "Order #000042")
	assert.Contains(t, body, `href="https://wa.me/1?text=hi"`)

	_, err = RenderTemplate(filepath.Join(t.TempDir(), "missing.html"), nil)
	assert.Error(t, err)
}

func TestSendEmail_RequiresSMTPConfig(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.Error(t, SendEmail(SMTPConfig{}, "seller@example.com", "New order", nil, "missing.html"))
}
