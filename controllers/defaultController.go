package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the NilamRoots API. Herbal goodness, served over HTTP.

The following are the endpoints for this API:

PRODUCTS
- GET "/api/products" - List products (?search, ?inStock)
- GET "/api/products/:id" - Get product by ID

REVIEWS
- POST "/api/reviews" - Add a review
- GET "/api/reviews/:productId" - Reviews of a product

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Access user account
- PUT "/api/auth/profile" - Update profile
- POST "/api/auth/upload-profile-pic" - Upload profile picture
- GET "/api/auth/me" - Current user
- POST "/api/auth/logout" - Revoke current token

ADDRESSES
- GET "/api/addresses/:userId" - Saved addresses of a user
- POST "/api/addresses" - Add address
- PUT "/api/addresses/:id" - Update address
- DELETE "/api/addresses/:id" - Delete address

ORDERS
- POST "/api/orders" - Place an order
- GET "/api/orders" - List orders (?userId)
- GET "/api/orders/:id" - Get order by ID
- PUT "/api/orders/:id" - Update order
- PUT "/api/orders/:id/approve" - Approve order
- PUT "/api/orders/:id/cancel" - Cancel order
- GET "/api/orders/:id/notify-link" - WhatsApp link for the seller

PAYMENTS
- POST "/api/orders/create-razorpay-order" - Open a gateway order
- POST "/api/orders/verify-payment" - Verify a payment signature
- GET "/api/orders/razorpay-key" - Public gateway key`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
