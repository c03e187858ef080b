package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/payments"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgPaymentVerified      = "Payment Verified Successfully"
	msgPaymentNotConfigured = "Payment gateway is not configured"
	msgPaymentFailed        = "Unable to create payment order"
)

type createPaymentOrderRequest struct {
	// Whole currency units; fractional rupees are accepted.
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// CreateRazorpayOrder opens a gateway order the checkout widget can pay.
func CreateRazorpayOrder(ctx *gin.Context) {
	logger := middlewares.GetLogger(ctx)

	var req createPaymentOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}

	order, err := initializers.Payments.CreateOrder(ctx.Request.Context(), req.Amount, req.Currency, req.Receipt)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount):
			sendErrorResponse(ctx, http.StatusBadRequest, payments.ErrInvalidAmount.Error())
		case errors.Is(err, payments.ErrNotConfigured):
			logger.Error("Razorpay credentials missing")
			sendErrorResponse(ctx, http.StatusInternalServerError, msgPaymentNotConfigured)
		default:
			logger.Error("Razorpay order creation failed", zap.String("amount", req.Amount.String()), zap.Error(err))
			sendErrorResponse(ctx, http.StatusInternalServerError, msgPaymentFailed)
		}
		return
	}

	logger.Info("Razorpay order created", zap.String("razorpay_order_id", order.ID), zap.Int64("amount", order.Amount))
	sendJSONResponse(ctx, http.StatusOK, order)
}

func VerifyPayment(ctx *gin.Context) {
	var req verifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"success": false, "message": bindingMessage(err)})
		return
	}

	if !initializers.Payments.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		middlewares.GetLogger(ctx).Warn("Payment signature mismatch", zap.String("razorpay_order_id", req.OrderID))
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"success": false, "message": msgInvalidSignature})
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": msgPaymentVerified})
}

// GetRazorpayKey exposes the public key id for the checkout widget.
func GetRazorpayKey(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"key": initializers.Payments.KeyID()})
}
