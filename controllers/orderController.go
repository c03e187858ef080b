package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/models"
	"github.com/nilamroots/nilamroots-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgOrderNotFound    = "Order not found"
	msgInvalidOrderID   = "Invalid order id"
	msgInvalidSignature = "Invalid Signature"
	msgOrdersForbidden  = "Admin access required"
	msgOrderForbidden   = "Not allowed to view this order"
)

func findOrder(ctx *gin.Context) (models.Order, bool) {
	var order models.Order

	id, ok := parseIDParam(ctx, "id", msgInvalidOrderID)
	if !ok {
		return order, false
	}

	if err := initializers.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return order, false
		}
		middlewares.GetLogger(ctx).Error("Failed to fetch order", zap.Uint("order_id", id), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return order, false
	}
	return order, true
}

func orderEmailTemplate(cfg *initializers.AppConfig) string {
	if cfg.OrderEmailTemplate == "" {
		return initializers.DefaultOrderEmailTemplate
	}
	return cfg.OrderEmailTemplate
}

// notifySeller mails the seller about a new order. Delivery failures are
// only logged.
func notifySeller(logger *zap.Logger, order models.Order) {
	cfg := initializers.Config
	if cfg == nil || cfg.NotifyEmailTo == "" || !cfg.SMTP.Enabled() {
		return
	}

	data := utils.OrderEmailData{
		ShortID:     utils.ShortOrderID(order),
		Message:     utils.OrderMessage(order),
		WhatsAppURL: utils.WhatsAppLink(cfg.WhatsAppNumber, order),
	}
	go func() {
		subject := "New order #" + data.ShortID
		if err := utils.SendEmail(cfg.SMTP, cfg.NotifyEmailTo, subject, data, orderEmailTemplate(cfg)); err != nil {
			logger.Warn("Order notification email failed", zap.Uint("order_id", order.ID), zap.Error(err))
		}
	}()
}

func CreateOrder(ctx *gin.Context) {
	logger := middlewares.GetLogger(ctx)

	var input models.OrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}

	if input.RazorpayOrderID != "" || input.RazorpaySignature != "" {
		paymentID := ""
		if input.TransactionID != nil {
			paymentID = *input.TransactionID
		}
		if !initializers.Payments.VerifySignature(input.RazorpayOrderID, paymentID, input.RazorpaySignature) {
			logger.Warn("Rejected order with bad payment signature", zap.String("razorpay_order_id", input.RazorpayOrderID))
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidSignature)
			return
		}
	}

	order := models.NewOrder(input)
	if err := initializers.DB.Create(&order).Error; err != nil {
		logger.Error("Failed to create order", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("payment_method", order.PaymentMethod),
		zap.String("payment_status", order.PaymentStatus),
		zap.Int("total_amount", order.TotalAmount),
	)
	notifySeller(logger, order)

	sendJSONResponse(ctx, http.StatusCreated, order)
}

// GetOrders lists orders newest first, optionally only those of ?userId.
func GetOrders(ctx *gin.Context) {
	query := initializers.DB.Model(&models.Order{})

	if raw := ctx.Query("userId"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidUserID)
			return
		}
		if !canActAs(ctx, uint(userID)) {
			sendErrorResponse(ctx, http.StatusForbidden, msgOrdersForbidden)
			return
		}
		query = query.Where("user_id = ?", userID)
	} else if !isAdmin(ctx) {
		sendErrorResponse(ctx, http.StatusForbidden, msgOrdersForbidden)
		return
	}

	orders := []models.Order{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		middlewares.GetLogger(ctx).Error("Failed to fetch orders", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, orders)
}

func GetOrder(ctx *gin.Context) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}
	if !canReadOrder(ctx, order) {
		sendErrorResponse(ctx, http.StatusForbidden, msgOrderForbidden)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func setOrderState(ctx *gin.Context, approved bool, status string) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}

	order.IsApproved = approved
	order.OrderStatus = status
	err := initializers.DB.Model(&order).Updates(map[string]any{
		"is_approved":  approved,
		"order_status": status,
	}).Error
	if err != nil {
		middlewares.GetLogger(ctx).Error("Failed to update order status", zap.Uint("order_id", order.ID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	middlewares.GetLogger(ctx).Info("Order status changed", zap.Uint("order_id", order.ID), zap.String("order_status", status))
	sendJSONResponse(ctx, http.StatusOK, order)
}

// ApproveOrder marks an order approved and placed. Repeating it is harmless.
func ApproveOrder(ctx *gin.Context) {
	setOrderState(ctx, true, models.OrderStatusPlaced)
}

// CancelOrder only relabels the order; no refund is issued.
func CancelOrder(ctx *gin.Context) {
	setOrderState(ctx, false, models.OrderStatusCancelled)
}

// UpdateOrder overlays the request body onto the stored order as-is.
func UpdateOrder(ctx *gin.Context) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}

	patch, err := ctx.GetRawData()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := order.ApplyPatch(patch); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := initializers.DB.Save(&order).Error; err != nil {
		middlewares.GetLogger(ctx).Error("Failed to update order", zap.Uint("order_id", order.ID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, order)
}

// GetOrderNotifyLink returns the WhatsApp deep link announcing the order to
// the seller.
func GetOrderNotifyLink(ctx *gin.Context) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}
	if !canReadOrder(ctx, order) {
		sendErrorResponse(ctx, http.StatusForbidden, msgOrderForbidden)
		return
	}

	number := utils.DefaultWhatsAppNumber
	if initializers.Config != nil && initializers.Config.WhatsAppNumber != "" {
		number = initializers.Config.WhatsAppNumber
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"url": utils.WhatsAppLink(number, order)})
}
