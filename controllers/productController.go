package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgProductNotFound = "Product not found"
	msgInvalidProduct  = "Invalid product id"
)

// GetProducts lists the catalog. ?search matches on name, ?inStock narrows
// by availability.
func GetProducts(ctx *gin.Context) {
	query := initializers.DB.Model(&models.Product{})

	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if raw := ctx.Query("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "inStock must be true or false")
			return
		}
		query = query.Where("in_stock = ?", inStock)
	}

	products := []models.Product{}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		middlewares.GetLogger(ctx).Error("Failed to fetch products", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, products)
}

func GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", msgInvalidProduct)
	if !ok {
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		middlewares.GetLogger(ctx).Error("Failed to fetch product", zap.Uint("product_id", id), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product)
}
