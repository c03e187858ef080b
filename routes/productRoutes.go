package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/controllers"
)

func ProductRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/:id", controllers.GetProduct)
	}
}

func ReviewRoutes(api *gin.RouterGroup) {
	reviews := api.Group("/reviews")
	{
		reviews.POST("", controllers.CreateReview)
		reviews.GET("/:productId", controllers.GetReviews)
	}
}
