package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID     = "rzp_test_key"
	testKeySecret = "test_secret"
)

func newGatewayServer(t *testing.T, handler http.HandlerFunc) *Razorpay {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRazorpay(Config{KeyID: testKeyID, KeySecret: testKeySecret, BaseURL: server.URL})
}

func TestSignature_KnownValue(t *testing.T) {
	sig := Signature(testKeySecret, "order_IluGWxBm9U8zJ8", "pay_IH4NVgf4Dreq1l")
	assert.Equal(t, "7adb19267b867c357a74aaee79704a12ea3464eb4b1cae09c2a4ad73795cbb7d", sig)
}

func TestVerifySignature(t *testing.T) {
	rp := NewRazorpay(Config{KeyID: testKeyID, KeySecret: testKeySecret})
	good := Signature(testKeySecret, "order_1", "pay_1")

	assert.True(t, rp.VerifySignature("order_1", "pay_1", good))
	assert.False(t, rp.VerifySignature("order_1", "pay_2", good))
	assert.False(t, rp.VerifySignature("order_1", "pay_1", strings.ToUpper(good)))
	assert.False(t, rp.VerifySignature("order_1", "pay_1", ""))

	unconfigured := NewRazorpay(Config{})
	assert.False(t, unconfigured.VerifySignature("order_1", "pay_1", Signature("", "order_1", "pay_1")))
}

func TestToMinorUnits(t *testing.T) {
	minor, err := ToMinorUnits(decimal.NewFromInt(549))
	require.NoError(t, err)
	assert.Equal(t, int64(54900), minor)

	minor, err = ToMinorUnits(decimal.RequireFromString("499.99"))
	require.NoError(t, err)
	assert.Equal(t, int64(49999), minor)

	_, err = ToMinorUnits(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = ToMinorUnits(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateOrder_PostsMinorUnits(t *testing.T) {
	var got OrderRequest
	rp := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, testKeyID, user)
		assert.Equal(t, testKeySecret, pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","entity":"order","amount":54900,"amount_paid":0,"amount_due":54900,"currency":"INR","receipt":"rcpt_1","status":"created","attempts":0,"created_at":1700000000}`))
	})

	order, err := rp.CreateOrder(context.Background(), decimal.NewFromInt(549), "", "rcpt_1")
	require.NoError(t, err)

	assert.Equal(t, int64(54900), got.Amount)
	assert.Equal(t, DefaultCurrency, got.Currency)
	assert.Equal(t, "rcpt_1", got.Receipt)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, int64(54900), order.AmountDue)
}

func TestCreateOrder_GeneratesReceipt(t *testing.T) {
	var got OrderRequest
	rp := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","amount":100,"currency":"USD"}`))
	})

	_, err := rp.CreateOrder(context.Background(), decimal.NewFromInt(1), "USD", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Receipt, "rcpt_"))
	assert.NotContains(t, got.Receipt, "-")
	assert.Equal(t, "USD", got.Currency)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	rp := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	})

	_, err := rp.CreateOrder(context.Background(), decimal.NewFromInt(549), "", "")
	assert.ErrorIs(t, err, ErrGateway)
}

func TestCreateOrder_ValidatesBeforeCalling(t *testing.T) {
	called := false
	rp := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := rp.CreateOrder(context.Background(), decimal.Zero, "", "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	unconfigured := NewRazorpay(Config{BaseURL: "http://127.0.0.1:1"})
	_, err = unconfigured.CreateOrder(context.Background(), decimal.NewFromInt(10), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, called)
}
