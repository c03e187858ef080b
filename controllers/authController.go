package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nilamroots/nilamroots-api/initializers"
	"github.com/nilamroots/nilamroots-api/middlewares"
	"github.com/nilamroots/nilamroots-api/models"
	"github.com/nilamroots/nilamroots-api/storage"
	"github.com/nilamroots/nilamroots-api/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bcryptCost = 10

	// Largest accepted profile picture.
	maxProfilePictureBytes = 5 << 20

	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "User already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "Invalid credentials"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Server error"
	msgUserNotFound          = "User not found"
	msgForbidden             = "Not allowed to modify this account"
	msgProfileUpdated        = "Profile updated successfully"
	msgNoFileUploaded        = "No file uploaded"
	msgOnlyImages            = "Only images are allowed"
	msgFileTooLarge          = "File too large"
	msgPictureUpdated        = "Profile picture updated successfully"
	msgLoggedOut             = "Logged out successfully"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkUserExists(email string) (bool, error) {
	var count int64
	err := initializers.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

func findUserByID(id uint) (models.User, error) {
	var user models.User
	result := initializers.DB.First(&user, id)
	return user, result.Error
}

// respondUserLookupError answers for a failed findUserByID.
func respondUserLookupError(ctx *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}
	middlewares.GetLogger(ctx).Error("User lookup failed", zap.Error(err))
	sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
}

// Register creates an account and signs the caller in.
func Register(ctx *gin.Context) {
	logger := middlewares.GetLogger(ctx)

	var data models.RegisterData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}
	email := normalizeEmail(data.Email)

	exists, err := checkUserExists(email)
	if err != nil {
		logger.Error("Database error during user check", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(data.Password)
	if err != nil {
		logger.Error("Password hashing error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Name:     data.Name,
		Email:    email,
		Password: hashedPassword,
		Phone:    data.Phone,
		Role:     models.RoleUser,
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		// a concurrent registration can slip past the existence check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		}
		logger.Error("User creation error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	token, err := utils.GenerateJWT(user, initializers.Config.JWTSecret, initializers.Config.RegisterTokenTTL)
	if err != nil {
		logger.Error("JWT generation error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	logger.Info("User registered", zap.Uint("user_id", user.ID))
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"token": token, "user": user.Summary()})
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}

	user, err := findUserByEmail(normalizeEmail(loginData.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			middlewares.GetLogger(ctx).Error("User lookup failed", zap.Error(err))
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWT(user, initializers.Config.JWTSecret, initializers.Config.LoginTokenTTL)
	if err != nil {
		middlewares.GetLogger(ctx).Error("JWT generation error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": token, "user": user.Summary()})
}

func UpdateProfile(ctx *gin.Context) {
	var data models.ProfileData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, bindingMessage(err))
		return
	}
	if !canActAs(ctx, data.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	user, err := findUserByID(data.UserID)
	if err != nil {
		respondUserLookupError(ctx, err)
		return
	}

	user.ApplyProfile(data)
	if err := initializers.DB.Save(&user).Error; err != nil {
		middlewares.GetLogger(ctx).Error("Update profile error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": msgProfileUpdated,
		"user":    user.Profile(),
	})
}

func UploadProfilePicture(ctx *gin.Context) {
	logger := middlewares.GetLogger(ctx)

	file, err := ctx.FormFile("profilePicture")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgNoFileUploaded)
		return
	}

	userID, err := strconv.ParseUint(ctx.PostForm("userId"), 10, 64)
	if err != nil || userID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid userId")
		return
	}
	if !canActAs(ctx, uint(userID)) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, err := storage.ValidateImage(file.Filename, contentType)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgOnlyImages)
		return
	}
	if file.Size > maxProfilePictureBytes {
		sendErrorResponse(ctx, http.StatusBadRequest, msgFileTooLarge)
		return
	}

	user, err := findUserByID(uint(userID))
	if err != nil {
		respondUserLookupError(ctx, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		logger.Error("Error opening upload", zap.String("filename", file.Filename), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Server error during upload")
		return
	}
	defer f.Close()

	name := storage.ProfilePictureName(ext, time.Now())
	location, err := initializers.Files.Save(ctx.Request.Context(), name, contentType, f)
	if err != nil {
		logger.Error("Upload error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Server error during upload")
		return
	}

	if err := initializers.DB.Model(&user).Update("profile_picture", location).Error; err != nil {
		logger.Error("Error saving profile picture", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Server error during upload")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":        msgPictureUpdated,
		"profilePicture": location,
	})
}

// Me returns the account behind the bearer token.
func Me(ctx *gin.Context) {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Not authorized")
		return
	}

	user, err := findUserByID(claims.UserID)
	if err != nil {
		respondUserLookupError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user.Profile()})
}

// Logout revokes the presented token for the rest of its lifetime.
func Logout(ctx *gin.Context) {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := initializers.Revocations.Revoke(ctx.Request.Context(), claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		middlewares.GetLogger(ctx).Error("Token revocation failed", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}
