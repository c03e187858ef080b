package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/storage"
)

// guarded prepends guard to handler; a nil guard leaves the route open.
func guarded(guard []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guard)+1)
	chain = append(chain, guard...)
	return append(chain, handler)
}

// RegisterRoutes mounts every API route on server. Uploaded files are served
// from uploadDir under /uploads when it is set.
func RegisterRoutes(server *gin.Engine, uploadDir string) {
	DefaultRoutes(server)
	if uploadDir != "" {
		server.Static("/"+storage.PublicPrefix, uploadDir)
	}

	api := server.Group("/api")
	ProductRoutes(api)
	ReviewRoutes(api)
	AuthRoutes(api)
	AddressRoutes(api)
	OrderRoutes(api)
}
