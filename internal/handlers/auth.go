package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/pkg/logger"
	"github.com/yasyhadav121/codecrack/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenCookieMaxAge = 7 * 24 * 60 * 60 // matches token expiry

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	EmailID   string `json:"emailId" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Age       *int   `json:"age"`
}

type LoginInput struct {
	EmailID  string `json:"emailId" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", true, true)
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := utils.ValidatePasswordStrength(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	// Role is always "user" here: admins are promoted out of band.
	user := models.User{
		ID:        utils.GenerateID(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		EmailID:   input.EmailID,
		Age:       input.Age,
		Password:  string(hashedPassword),
		Role:      models.RoleUser,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		logger.Warn().Err(result.Error).Str("emailId", input.EmailID).Msg("Registration failed: unique violation")
		c.JSON(http.StatusConflict, gin.H{"message": "An account with this email already exists"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	setTokenCookie(c, token)
	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if result := database.DB.Where("\"emailId\" = ?", input.EmailID).First(&user); result.Error != nil {
		logger.Warn().Str("emailId", input.EmailID).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("emailId", input.EmailID).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	setTokenCookie(c, token)
	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Check revalidates the session credential. Reaching this handler at all
// means UserMiddleware accepted the token.
func Check(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Valid user",
	})
}

// Logout revokes the token via the Redis blacklist and clears the cookie.
// It always responds 200: the client ends its session regardless.
func Logout(c *gin.Context) {
	if claimsVal, exists := c.Get("claims"); exists {
		if claims, ok := claimsVal.(*utils.Claims); ok && claims.ExpiresAt != nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
				logger.Warn().Err(err).Msg("Failed to blacklist token on logout")
			}
		}
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// DeleteProfile removes the account and its submissions.
func DeleteProfile(c *gin.Context) {
	userID := c.GetString("userId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("\"userId\" = ?", userID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to delete profile")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete profile"})
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
