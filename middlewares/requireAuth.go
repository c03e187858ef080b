package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/utils"
	"go.uber.org/zap"
)

const userKey = "user"

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Authenticate resolves the bearer token into claims, rejecting revoked tokens.
func Authenticate(ctx *gin.Context) (*utils.TokenClaims, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, utils.ErrInvalidToken
	}

	claims, err := utils.ParseJWT(token, initializers.Config.JWTSecret)
	if err != nil {
		return nil, err
	}

	if initializers.Revocations != nil && claims.TokenID != "" {
		revoked, err := initializers.Revocations.IsRevoked(ctx.Request.Context(), claims.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, utils.ErrTokenRevoked
		}
	}
	return claims, nil
}

func authenticateOrAbort(ctx *gin.Context) {
	claims, err := Authenticate(ctx)
	if err != nil {
		if !errors.Is(err, utils.ErrInvalidToken) && !errors.Is(err, utils.ErrTokenRevoked) {
			GetLogger(ctx).Error("Token check failed", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
		return
	}

	ctx.Set(userKey, claims)
	ctx.Next()
}

func RequireAuth() gin.HandlerFunc {
	return authenticateOrAbort
}

// OptionalAuth lets anonymous requests through but still rejects a bad token.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if bearerToken(ctx) == "" {
			ctx.Next()
			return
		}
		authenticateOrAbort(ctx)
	}
}

func CurrentUser(ctx *gin.Context) (*utils.TokenClaims, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.TokenClaims)
	return claims, ok && claims != nil
}
