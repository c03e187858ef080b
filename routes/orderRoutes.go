package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/controllers"
	"github.com/nilamroots/nilamroots-api/middlewares"
)

func OrderRoutes(api *gin.RouterGroup) {
	orders := api.Group("/orders")
	admin, reader := middlewares.AdminGuard(), middlewares.OptionalGuard()
	{
		// payment bridge
		orders.POST("/create-razorpay-order", controllers.CreateRazorpayOrder)
		orders.POST("/verify-payment", controllers.VerifyPayment)
		orders.GET("/razorpay-key", controllers.GetRazorpayKey)

		orders.POST("", controllers.CreateOrder)
		orders.GET("", guarded(middlewares.UserGuard(), controllers.GetOrders)...)
		orders.GET("/:id", guarded(reader, controllers.GetOrder)...)
		orders.GET("/:id/notify-link", guarded(reader, controllers.GetOrderNotifyLink)...)
		orders.PUT("/:id", guarded(admin, controllers.UpdateOrder)...)
		orders.PUT("/:id/approve", guarded(admin, controllers.ApproveOrder)...)
		orders.PUT("/:id/cancel", guarded(admin, controllers.CancelOrder)...)
	}
}
