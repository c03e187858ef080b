package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/models"
	"github.com/nilamroots/nilamroots-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuth(t *testing.T, enforce bool) *utils.MemoryRevocationStore {
	t.Helper()
	prevConfig, prevStore := initializers.Config, initializers.Revocations
	store := utils.NewMemoryRevocationStore()
	initializers.Config = &initializers.AppConfig{JWTSecret: testSecret, AuthEnforce: enforce}
	initializers.Revocations = store
	t.Cleanup(func() {
		initializers.Config, initializers.Revocations = prevConfig, prevStore
	})
	return store
}

func tokenFor(t *testing.T, id uint, role string) string {
	t.Helper()
	token, err := utils.GenerateJWT(models.User{ID: id, Email: "u@example.com", Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers = append(handlers, func(ctx *gin.Context) {
		claims, ok := CurrentUser(ctx)
		if ok {
			ctx.JSON(http.StatusOK, gin.H{"id": claims.UserID})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": 0})
	})
	router.GET("/", handlers...)
	return router
}

func do(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	setupAuth(t, false)
	router := newEngine(RequireAuth())

	w := do(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, token failed"}`, w.Body.String())

	w = do(router, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, tokenFor(t, 5, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5}`, w.Body.String())
}

func TestRequireAuth_RejectsRevokedToken(t *testing.T) {
	store := setupAuth(t, false)
	router := newEngine(RequireAuth())
	token := tokenFor(t, 5, models.RoleUser)

	claims, err := utils.ParseJWT(token, testSecret)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.TokenID, time.Hour))

	w := do(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	store := setupAuth(t, true)
	router := newEngine(OptionalAuth())

	w := do(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0}`, w.Body.String())

	w = do(router, tokenFor(t, 7, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())

	w = do(router, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := tokenFor(t, 7, models.RoleUser)
	claims, err := utils.ParseJWT(token, testSecret)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.TokenID, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, do(router, token).Code)
}

func TestRequireAdmin(t *testing.T) {
	setupAuth(t, true)
	router := newEngine(RequireAuth(), RequireAdmin())

	w := do(router, tokenFor(t, 5, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, w.Body.String())

	w = do(router, tokenFor(t, 1, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)

	bare := newEngine(RequireAdmin())
	w = do(bare, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuards_FollowAuthEnforce(t *testing.T) {
	setupAuth(t, false)
	assert.Nil(t, AdminGuard())
	assert.Nil(t, UserGuard())
	assert.Nil(t, OptionalGuard())

	setupAuth(t, true)
	assert.Len(t, AdminGuard(), 2)
	assert.Len(t, UserGuard(), 1)
	assert.Len(t, OptionalGuard(), 1)

	router := newEngine(AdminGuard()...)
	assert.Equal(t, http.StatusUnauthorized, do(router, "").Code)
}

func TestRequestID(t *testing.T) {
	router := newEngine(RequestID())

	w := do(router, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_LogsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/ok", func(ctx *gin.Context) {
		GetLogger(ctx).Info("inside handler")
		ctx.Status(http.StatusOK)
	})
	router.GET("/missing", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/ok?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "inside handler", entries[0].Message)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "x=1", entries[1].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/", func(ctx *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestGetLogger_FallsBackToProcessLogger(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Same(t, initializers.Logger, GetLogger(ctx))
}
