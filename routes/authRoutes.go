package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/controllers"
	"github.com/nilamroots/nilamroots-api/middlewares"
)

func AuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.PUT("/profile", guarded(middlewares.UserGuard(), controllers.UpdateProfile)...)
		auth.POST("/upload-profile-pic", guarded(middlewares.UserGuard(), controllers.UploadProfilePicture)...)
		auth.GET("/me", middlewares.RequireAuth(), controllers.Me)
		auth.POST("/logout", middlewares.RequireAuth(), controllers.Logout)
	}
}

func AddressRoutes(api *gin.RouterGroup) {
	addresses := api.Group("/addresses")
	guard := middlewares.UserGuard()
	{
		addresses.GET("/:userId", guarded(guard, controllers.GetAddresses)...)
		addresses.POST("", guarded(guard, controllers.CreateAddress)...)
		addresses.PUT("/:id", guarded(guard, controllers.UpdateAddress)...)
		addresses.DELETE("/:id", guarded(guard, controllers.DeleteAddress)...)
	}
}
