package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	apperrors "github.com/Mostakim52/khuje-nao/pkg/errors"
	"github.com/Mostakim52/khuje-nao/pkg/logger"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
	"gorm.io/gorm"
)

// IdentityVerifier turns an opaque credential into a verified (subject id,
// email) pair or rejects it. The default goes through our JWT validation;
// tests swap in a stub.
type IdentityVerifier interface {
	Verify(credential string) (subject, email string, err error)
}

type jwtVerifier struct{}

func (jwtVerifier) Verify(credential string) (string, string, error) {
	claims, err := utils.ValidateToken(credential)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Email, nil
}

var Verifier IdentityVerifier = jwtVerifier{}

const (
	otpTTL           = 5 * time.Minute
	otpRequestLimit  = 3
	otpRequestWindow = 10 * time.Minute
)

// Register creates a password-based account with a complete campus profile.
func Register(c *gin.Context) {
	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
		NSUID       string `json:"nsu_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, phone_number, password and nsu_id are required"})
		return
	}
	if input.Name == "" || input.PhoneNumber == "" || input.Password == "" || input.NSUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, phone_number, password and nsu_id are required"})
		return
	}
	if !utils.IsValidPhoneNumber(input.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_number must be a valid 01XXXXXXXXX number"})
		return
	}
	if !utils.IsValidNSUID(input.NSUID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nsu_id must be a 7-digit number"})
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		respondError(c, apperrors.Conflict("Email already registered"))
		return
	}
	if err := database.DB.Where("nsu_id = ?", input.NSUID).First(&existing).Error; err == nil {
		respondError(c, apperrors.Conflict("NSU ID already registered"))
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		ID:              utils.GenerateID(),
		Name:            input.Name,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		NSUID:           input.NSUID,
		Password:        hash,
		ProfileComplete: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		// Unique index race: someone registered the email between the check
		// and the insert.
		respondError(c, apperrors.Conflict("Email already registered"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "id": user.ID})
}

// Login exchanges email+password for a token.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if user.Password == "" || !utils.CheckPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// TokenLogin verifies an external identity credential and upserts the profile
// it maps to. New identities start with an incomplete profile.
func TokenLogin(c *gin.Context) {
	var input struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_token is required"})
		return
	}

	subject, email, err := Verifier.Verify(input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
		return
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not present in token"})
		return
	}

	var user models.User
	err = database.DB.Where("external_uid = ?", subject).Or("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:          utils.GenerateID(),
			Email:       email,
			ExternalUID: subject,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	} else if user.ExternalUID != subject {
		database.DB.Model(&user).Update("external_uid", subject)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token verified", "uid": subject, "email": email})
}

// GetProfile returns the authenticated user's profile.
func GetProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// SaveProfile completes the campus profile for an external-identity account.
func SaveProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var input struct {
		Name        string `json:"name"`
		NSUID       string `json:"nsu_id"`
		PhoneNumber string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		input.Name == "" || input.NSUID == "" || input.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, nsu_id and phone are required"})
		return
	}
	if !utils.IsValidNSUID(input.NSUID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nsu_id must be a 7-digit number"})
		return
	}
	if !utils.IsValidPhoneNumber(input.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone must be a valid 01XXXXXXXXX number"})
		return
	}

	res := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"name":             input.Name,
		"nsu_id":           input.NSUID,
		"phone_number":     input.PhoneNumber,
		"profile_complete": true,
	})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile saved"})
}

// RequestOTP issues a short-lived code keyed by email. Delivery is out of
// scope here; the code only lives in the TTL store.
func RequestOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if database.Redis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OTP service unavailable"})
		return
	}

	// Per-email issue limit so a single address cannot be flooded with codes.
	allowed, err := database.CheckRateLimit("otp:"+input.Email, otpRequestLimit, otpRequestWindow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue OTP"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many OTP requests, try again later"})
		return
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := database.SetOTP(input.Email, code, otpTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue OTP"})
		return
	}

	logger.Info().Str("email", input.Email).Msg("OTP issued")
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTP checks a code against the TTL store and consumes it.
func VerifyOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and code are required"})
		return
	}

	if database.Redis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OTP service unavailable"})
		return
	}

	stored, err := database.GetOTP(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		return
	}
	if stored == "" || stored != input.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	database.DeleteOTP(input.Email)
	c.JSON(http.StatusOK, gin.H{"message": "OTP verified"})
}
