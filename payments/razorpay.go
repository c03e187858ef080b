// Package payments bridges checkout to the Razorpay hosted-checkout gateway.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL  = "https://api.razorpay.com"
	DefaultCurrency = "INR"
	defaultTimeout  = 30 * time.Second
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrNotConfigured = errors.New("razorpay credentials are not set")
	ErrGateway       = errors.New("payment gateway error")
)

type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

type Razorpay struct {
	keyID     string
	keySecret string
	client    *resty.Client
}

type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

// GatewayOrder is the remote payment intent the hosted widget is opened with.
type GatewayOrder struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	CreatedAt  int64  `json:"created_at"`
}

func NewRazorpay(cfg Config) *Razorpay {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetHeader("Accept", "application/json")

	return &Razorpay{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		client:    client,
	}
}

// KeyID is the public half of the credentials, safe to hand to the storefront.
func (r *Razorpay) KeyID() string {
	return r.keyID
}

// ToMinorUnits converts whole currency units to paise.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func (r *Razorpay) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*GatewayOrder, error) {
	minor, err := ToMinorUnits(amount)
	if err != nil {
		return nil, err
	}
	if r.keyID == "" || r.keySecret == "" {
		return nil, ErrNotConfigured
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if receipt == "" {
		receipt = "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	var order GatewayOrder
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(OrderRequest{Amount: minor, Currency: currency, Receipt: receipt}).
		SetResult(&order).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode(), resp.String())
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id missing in response", ErrGateway)
	}

	return &order, nil
}

// Signature is hex(HMAC_SHA256(secret, orderID + "|" + paymentID)).
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	if r.keySecret == "" || signature == "" {
		return false
	}
	expected := Signature(r.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
