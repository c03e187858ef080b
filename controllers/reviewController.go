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

// refreshProductRating recomputes rating and reviewsCount of a product from
// every review stored for it.
func refreshProductRating(tx *gorm.DB, productID uint) error {
	var ratings []int
	if err := tx.Model(&models.Review{}).Where("product_id = ?", productID).Pluck("rating", &ratings).Error; err != nil {
		return err
	}
	return tx.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]any{
		"rating":        models.AverageRating(ratings),
		"reviews_count": len(ratings),
	}).Error
}

func CreateReview(ctx *gin.Context) {
	var input models.ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}

	productID := uint(input.ProductID)
	review := models.Review{
		ProductID: productID,
		User:      input.User,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, productID).Error; err != nil {
			return err
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return refreshProductRating(tx, productID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		middlewares.GetLogger(ctx).Error("Failed to add review", zap.Uint("product_id", productID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, review)
}

// GetReviews returns the reviews of one product, newest first.
func GetReviews(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "productId", msgInvalidProduct)
	if !ok {
		return
	}

	reviews := []models.Review{}
	err := initializers.DB.
		Where("product_id = ?", productID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		middlewares.GetLogger(ctx).Error("Failed to fetch reviews", zap.Uint("product_id", productID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, reviews)
}
