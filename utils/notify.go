package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nilamroots/nilamroots-api/models"
)

const DefaultWhatsAppNumber = "919497893966"

// ShortOrderID is the last six characters of the order id, upper-cased.
func ShortOrderID(order models.Order) string {
	id := fmt.Sprintf("%d", order.ID)
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

func paymentText(order models.Order) string {
	if order.PaymentMethod == models.PaymentMethodCOD {
		return "Cash on Delivery (COD)"
	}
	if order.TransactionID != nil {
		return fmt.Sprintf("Online Payment (%s, txn %s)", order.PaymentStatus, *order.TransactionID)
	}
	return fmt.Sprintf("Online Payment (%s)", order.PaymentStatus)
}

func itemList(order models.Order) string {
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

// OrderMessage is the text the seller receives for a new order.
func OrderMessage(order models.Order) string {
	lines := []string{
		"*New order received!*",
		"--------------------------------",
		"*Name:* " + order.CustomerName,
		"*Phone:* " + order.PhoneNumber,
		"*Address:* " + order.Address,
		"*Items:* " + itemList(order),
		fmt.Sprintf("*Total:* ₹%d", order.TotalAmount),
		"*Payment:* " + paymentText(order),
		"*Order ID:* #" + ShortOrderID(order),
		"--------------------------------",
		"Please approve the order. Thank you!",
	}
	return strings.Join(lines, "\n")
}

// WhatsAppLink is a wa.me deep link pre-filled with the order message.
func WhatsAppLink(number string, order models.Order) string {
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	text := strings.ReplaceAll(url.QueryEscape(OrderMessage(order)), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}
