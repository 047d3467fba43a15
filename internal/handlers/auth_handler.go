// campus-crm/internal/handlers/auth_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"campus-crm/config"
	"campus-crm/internal/middleware"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// LoginInput binds the sign-in payload.
type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies credentials, issues a signed token and sets it as an
// HTTP-only cookie. The token is also returned in the body for API clients
// that prefer a Bearer header.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("login = ?", input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}
	if user.Status != "active" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.JwtKey)
	if err != nil {
		slog.Error("failed to sign token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	c.SetCookie("auth_token", signed, int(tokenLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// LogoutHandler clears the session cookie and drops the cached user data so
// a role change takes effect on the next sign-in.
func LogoutHandler(c *gin.Context) {
	if userID := currentUserID(c); userID != 0 && config.RDB != nil {
		if err := config.RDB.Del(config.Ctx, middleware.UserCacheKey(userID)).Err(); err != nil {
			slog.Warn("failed to invalidate user cache on logout", "error", err, "user_id", userID)
		}
	}
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfileHandler returns the authenticated user's own data. Roles and
// permissions come straight from the context, the middleware already
// resolved them.
func GetProfileHandler(c *gin.Context) {
	userIDVal, _ := c.Get("user_id")
	loginVal, _ := c.Get("login")
	rolesVal, _ := c.Get("roles")
	permissionsVal, _ := c.Get("permissions")

	userID, _ := userIDVal.(uint)
	login, _ := loginVal.(string)
	roles, _ := rolesVal.([]string)
	permissions, _ := permissionsVal.([]string)

	var details models.User
	if err := config.DB.Select("full_name", "email", "phone", "photo_url").First(&details, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User details not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          userID,
		"login":       login,
		"fullName":    details.FullName,
		"email":       details.Email,
		"phone":       details.Phone,
		"photoUrl":    details.PhotoURL,
		"roles":       roles,
		"permissions": permissions,
	})
}

// UpdateProfileInput binds the editable profile fields.
type UpdateProfileInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateProfileHandler lets a user edit their own contact data and password.
func UpdateProfileHandler(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
