package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// useBrokenDB swaps in a MySQL handle whose every query fails.
func useBrokenDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	initializers.DB = db
	return mock
}

func TestHandlers_DatabaseFailure(t *testing.T) {
	setupTestEnv(t)
	mock := useBrokenDB(t)
	router := newRouter()
	lost := errors.New("connection lost")

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/products", nil},
		{http.MethodGet, "/api/products/1", nil},
		{http.MethodGet, "/api/reviews/1", nil},
		{http.MethodGet, "/api/orders", nil},
		{http.MethodGet, "/api/orders/1", nil},
		{http.MethodGet, "/api/addresses/1", nil},
		{http.MethodPost, "/api/auth/login", map[string]any{"email": "a@example.com", "password": "x"}},
		{http.MethodPost, "/api/auth/register", map[string]any{"name": "A", "email": "a@example.com", "password": "x"}},
	}
	for _, c := range cases {
		mock.ExpectQuery("SELECT").WillReturnError(lost)

		w := performRequest(router, c.method, c.path, c.body, "")
		assertMessage(t, w, http.StatusInternalServerError, msgInternalServerError)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_DatabaseFailure(t *testing.T) {
	setupTestEnv(t)
	mock := useBrokenDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	w := performRequest(newRouter(), http.MethodPost, "/api/orders", orderBody("COD"), "")
	assertMessage(t, w, http.StatusInternalServerError, msgInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
