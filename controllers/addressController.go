package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgAddressNotFound  = "Address not found"
	msgAddressDeleted   = "Address deleted successfully"
	msgInvalidAddressID = "Invalid address id"
	msgInvalidUserID    = "Invalid user id"
	msgAddressForbidden = "Not allowed to access these addresses"
)

func findAddress(ctx *gin.Context) (models.Address, bool) {
	var address models.Address

	id, ok := parseIDParam(ctx, "id", msgInvalidAddressID)
	if !ok {
		return address, false
	}

	if err := initializers.DB.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgAddressNotFound)
			return address, false
		}
		middlewares.GetLogger(ctx).Error("Failed to fetch address", zap.Uint("address_id", id), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return address, false
	}

	if !canActAs(ctx, address.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgAddressForbidden)
		return address, false
	}
	return address, true
}

func GetAddresses(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId", msgInvalidUserID)
	if !ok {
		return
	}
	if !canActAs(ctx, userID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgAddressForbidden)
		return
	}

	addresses := []models.Address{}
	if err := initializers.DB.Where("user_id = ?", userID).Order("id ASC").Find(&addresses).Error; err != nil {
		middlewares.GetLogger(ctx).Error("Failed to fetch addresses", zap.Uint("user_id", userID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, addresses)
}

func CreateAddress(ctx *gin.Context) {
	var input models.AddressInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}
	if !canActAs(ctx, input.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgAddressForbidden)
		return
	}

	address := input.ToAddress()
	if err := initializers.DB.Create(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		middlewares.GetLogger(ctx).Error("Failed to create address", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, address)
}

// UpdateAddress writes only the fields present in the body.
func UpdateAddress(ctx *gin.Context) {
	address, ok := findAddress(ctx)
	if !ok {
		return
	}

	var input models.AddressUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}

	if changes := input.Changes(); len(changes) > 0 {
		if err := initializers.DB.Model(&address).Updates(changes).Error; err != nil {
			middlewares.GetLogger(ctx).Error("Failed to update address", zap.Uint("address_id", address.ID), zap.Error(err))
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if err := initializers.DB.First(&address, address.ID).Error; err != nil {
			middlewares.GetLogger(ctx).Error("Failed to reload address", zap.Uint("address_id", address.ID), zap.Error(err))
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, address)
}

func DeleteAddress(ctx *gin.Context) {
	address, ok := findAddress(ctx)
	if !ok {
		return
	}

	if err := initializers.DB.Delete(&address).Error; err != nil {
		middlewares.GetLogger(ctx).Error("Failed to delete address", zap.Uint("address_id", address.ID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAddressDeleted})
}
