package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&User{}, &Address{}, &Product{}, &Review{}, &Order{}))
	return db
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]int{4}))
	assert.InDelta(t, 4.5, AverageRating([]int{4, 5}), 1e-9)
	assert.InDelta(t, 11.0/3.0, AverageRating([]int{5, 4, 2}), 1e-9)
}

func TestProduct_PersistsJSONColumnsAndLegacyID(t *testing.T) {
	db := setupTestDB(t)

	product := Product{
		Name:        "Adivasi Herbal Hair Oil",
		Description: "Cold-pressed blend",
		Price:       549,
		Images:      []string{"/images/oil.png"},
		Features:    []string{"Reduces hair fall", "Natural"},
		InStock:     true,
	}
	require.NoError(t, db.Create(&product).Error)
	assert.Equal(t, "1", product.LegacyID)

	var loaded Product
	require.NoError(t, db.First(&loaded, product.ID).Error)
	assert.Equal(t, []string{"/images/oil.png"}, []string(loaded.Images))
	assert.Equal(t, []string{"Reduces hair fall", "Natural"}, []string(loaded.Features))
	assert.Equal(t, "1", loaded.LegacyID)

	raw, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"_id":"1"`)
	assert.NotContains(t, string(raw), "reviews\":")
}

func TestProduct_EmptySlicesSerializeAsArrays(t *testing.T) {
	db := setupTestDB(t)

	product := Product{Name: "Soap", Description: "Bar", Price: 399}
	require.NoError(t, db.Create(&product).Error)

	var loaded Product
	require.NoError(t, db.First(&loaded, product.ID).Error)
	raw, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"images":[]`)
	assert.Contains(t, string(raw), `"features":[]`)
}

func TestOrder_PersistsItemSnapshot(t *testing.T) {
	db := setupTestDB(t)

	in := sampleInput()
	in.PaymentMethod = "COD"
	order := NewOrder(in)
	require.NoError(t, db.Create(&order).Error)

	var loaded Order
	require.NoError(t, db.First(&loaded, order.ID).Error)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, FlexID(1), loaded.Items[0].ProductID)
	assert.Equal(t, 549, loaded.Items[0].Price)
	assert.Equal(t, OrderStatusPending, loaded.OrderStatus)
	assert.Nil(t, loaded.TransactionID)
	assert.Equal(t, legacyID(order.ID), loaded.LegacyID)
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	user := User{ID: 1, Name: "Asha", Email: "asha@example.com", Password: "hash", Role: RoleUser}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Equal(t, UserSummary{ID: 1, Name: "Asha", Email: "asha@example.com", Role: RoleUser}, user.Summary())
}

func TestUser_ApplyProfileKeepsBlankFields(t *testing.T) {
	user := User{Name: "Asha", Phone: "9000000000", Address: "Old", Pincode: "682001"}

	user.ApplyProfile(ProfileData{UserID: 1, Name: "Asha K", Address: ""})

	assert.Equal(t, "Asha K", user.Name)
	assert.Equal(t, "9000000000", user.Phone)
	assert.Equal(t, "Old", user.Address)
	assert.Equal(t, "682001", user.Pincode)
}

func TestAddressInput_DefaultsToHome(t *testing.T) {
	address := AddressInput{UserID: 1, Name: "Asha"}.ToAddress()
	assert.Equal(t, AddressTypeHome, address.Type)

	address = AddressInput{UserID: 1, Type: AddressTypeWork}.ToAddress()
	assert.Equal(t, AddressTypeWork, address.Type)
}

func TestAddressUpdate_ChangesOnlySuppliedFields(t *testing.T) {
	var update AddressUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"city":"Kochi","altPhone":"","type":"Work"}`), &update))

	assert.Equal(t, map[string]any{
		"city":      "Kochi",
		"alt_phone": "",
		"type":      "Work",
	}, update.Changes())
}
