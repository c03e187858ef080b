package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/models"
)

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// bindingMessage turns a bind error into a client-facing sentence.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, ", ")
	}
	return msgInvalidInput
}

func parseIDParam(ctx *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}

// isAdmin reports whether the caller holds the admin role. With AUTH_ENFORCE
// off every caller does.
func isAdmin(ctx *gin.Context) bool {
	if initializers.Config == nil || !initializers.Config.AuthEnforce {
		return true
	}
	claims, ok := middlewares.CurrentUser(ctx)
	return ok && claims.IsAdmin()
}

// canActAs reports whether the caller may act on userID's records. With
// AUTH_ENFORCE off every caller may.
func canActAs(ctx *gin.Context, userID uint) bool {
	if initializers.Config == nil || !initializers.Config.AuthEnforce {
		return true
	}
	claims, ok := middlewares.CurrentUser(ctx)
	return ok && (claims.UserID == userID || claims.IsAdmin())
}

// canReadOrder lets anyone read guest orders; account orders need the owner
// or an admin.
func canReadOrder(ctx *gin.Context, order models.Order) bool {
	return order.UserID == nil || canActAs(ctx, *order.UserID)
}
