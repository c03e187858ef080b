package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "Online"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"

	OrderStatusPending   = "Pending"
	OrderStatusPlaced    = "Placed"
	OrderStatusCancelled = "Cancelled"
)

// FlexID accepts both 3 and "3" on the wire; the storefront sends product ids as strings.
type FlexID uint

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := strings.Trim(string(data), `"`)
	if raw == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = FlexID(n)
	return nil
}

// OrderItem is a point-in-time snapshot of a product line.
type OrderItem struct {
	ProductID FlexID `json:"productId"`
	Name      string `json:"name" binding:"required"`
	Price     int    `json:"price" binding:"min=0"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type Order struct {
	ID            uint                           `json:"id" gorm:"primaryKey"`
	LegacyID      string                         `json:"_id" gorm:"-"`
	CustomerName  string                         `json:"customerName" gorm:"not null"`
	PhoneNumber   string                         `json:"phoneNumber" gorm:"not null"`
	Address       string                         `json:"address" gorm:"type:text;not null"`
	City          string                         `json:"city" gorm:"not null"`
	Pincode       string                         `json:"pincode" gorm:"not null"`
	Items         datatypes.JSONSlice[OrderItem] `json:"items" gorm:"not null"`
	TotalAmount   int                            `json:"totalAmount" gorm:"not null"`
	PaymentMethod string                         `json:"paymentMethod" gorm:"not null"`
	PaymentStatus string                         `json:"paymentStatus" gorm:"default:Pending"`
	TransactionID *string                        `json:"transactionId"`
	UserID        *uint                          `json:"userId" gorm:"index"`
	OrderStatus   string                         `json:"orderStatus" gorm:"default:Pending"`
	IsApproved    bool                           `json:"isApproved" gorm:"default:false"`
	CreatedAt     time.Time                      `json:"createdAt"`
	UpdatedAt     time.Time                      `json:"updatedAt"`
}

func (o *Order) AfterFind(tx *gorm.DB) error {
	o.LegacyID = legacyID(o.ID)
	return nil
}

func (o *Order) AfterSave(tx *gorm.DB) error {
	o.LegacyID = legacyID(o.ID)
	return nil
}

type OrderInput struct {
	CustomerName  string      `json:"customerName" binding:"required"`
	PhoneNumber   string      `json:"phoneNumber" binding:"required"`
	Address       string      `json:"address" binding:"required"`
	City          string      `json:"city" binding:"required"`
	Pincode       string      `json:"pincode" binding:"required"`
	Items         []OrderItem `json:"items" binding:"required,min=1,dive"`
	TotalAmount   int         `json:"totalAmount" binding:"min=0"`
	PaymentMethod string      `json:"paymentMethod" binding:"required"`
	TransactionID *string     `json:"transactionId"`
	UserID        *uint       `json:"userId"`

	// Set when the client wants the server to re-check the gateway callback.
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// NormalizePaymentMethod folds the storefront's choices onto COD or Online.
func NormalizePaymentMethod(method string) string {
	if strings.EqualFold(strings.TrimSpace(method), PaymentMethodCOD) {
		return PaymentMethodCOD
	}
	return PaymentMethodOnline
}

func ItemsTotal(items []OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

// NewOrder builds the record inserted at checkout. Status fields are decided
// here, never taken from the client.
func NewOrder(in OrderInput) Order {
	order := Order{
		CustomerName:  in.CustomerName,
		PhoneNumber:   in.PhoneNumber,
		Address:       in.Address,
		City:          in.City,
		Pincode:       in.Pincode,
		Items:         datatypes.JSONSlice[OrderItem](in.Items),
		TotalAmount:   in.TotalAmount,
		PaymentMethod: NormalizePaymentMethod(in.PaymentMethod),
		PaymentStatus: PaymentStatusPending,
		UserID:        in.UserID,
		OrderStatus:   OrderStatusPending,
		IsApproved:    false,
	}
	if order.TotalAmount == 0 {
		order.TotalAmount = ItemsTotal(in.Items)
	}

	if order.PaymentMethod == PaymentMethodOnline && in.TransactionID != nil && *in.TransactionID != "" {
		txn := *in.TransactionID
		order.TransactionID = &txn
		order.PaymentStatus = PaymentStatusPaid
	}
	return order
}

// ApplyPatch overlays a partial JSON document onto o. Identity and creation
// time survive the overlay; every other field is taken as sent.
func (o *Order) ApplyPatch(patch []byte) error {
	id, createdAt := o.ID, o.CreatedAt
	if err := json.Unmarshal(patch, o); err != nil {
		return err
	}
	o.ID, o.CreatedAt = id, createdAt
	o.LegacyID = legacyID(id)
	return nil
}
