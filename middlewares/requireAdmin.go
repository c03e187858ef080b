package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := CurrentUser(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if !claims.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}

		ctx.Next()
	}
}

// AdminGuard is the handler chain for admin-only routes; empty unless AUTH_ENFORCE is on.
func AdminGuard() []gin.HandlerFunc {
	if initializers.Config == nil || !initializers.Config.AuthEnforce {
		return nil
	}
	return []gin.HandlerFunc{RequireAuth(), RequireAdmin()}
}

// OptionalGuard identifies the caller, if any, when AUTH_ENFORCE is on.
func OptionalGuard() []gin.HandlerFunc {
	if initializers.Config == nil || !initializers.Config.AuthEnforce {
		return nil
	}
	return []gin.HandlerFunc{OptionalAuth()}
}

// UserGuard requires a bearer token on per-user routes when AUTH_ENFORCE is on.
func UserGuard() []gin.HandlerFunc {
	if initializers.Config == nil || !initializers.Config.AuthEnforce {
		return nil
	}
	return []gin.HandlerFunc{RequireAuth()}
}
