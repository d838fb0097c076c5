package controllers

import (
	"net/http"
	"time"

	"repaircafe_server/config"
	"repaircafe_server/internal/db"
	"repaircafe_server/internal/http/middleware"
	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthController handles authentication related HTTP requests
type AuthController struct{}

// NewAuthController creates a new auth controller
func NewAuthController() *AuthController {
	return &AuthController{}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Token   string                 `json:"token,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Login authenticates a user and returns a token
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		colors.PrintError("Invalid login request: %v", err)
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	colors.PrintInfo("Login attempt for username: %s", req.Username)

	// Find user by username
	var user models.User
	if err := db.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			colors.PrintWarning("Login failed: User not found for username %s", req.Username)
			c.JSON(http.StatusUnauthorized, AuthResponse{
				Success: false,
				Error:   "Invalid credentials",
				Message: "Username or password is incorrect",
			})
			return
		}
		colors.PrintError("Database error during login: %v", err)
		c.JSON(http.StatusInternalServerError, AuthResponse{
			Success: false,
			Error:   "Internal server error",
			Message: "Please try again later",
		})
		return
	}

	// Check password
	if !user.CheckPassword(req.Password) {
		colors.PrintWarning("Login failed: Invalid password for username %s", req.Username)
		c.JSON(http.StatusUnauthorized, AuthResponse{
			Success: false,
			Error:   "Invalid credentials",
			Message: "Username or password is incorrect",
		})
		return
	}

	// Disabled accounts cannot log in
	if !user.IsActive {
		colors.PrintWarning("Login failed: Account %s is disabled", req.Username)
		c.JSON(http.StatusForbidden, AuthResponse{
			Success: false,
			Error:   "Account disabled",
			Message: "This account has been disabled",
		})
		return
	}

	// Generate new token
	lifetime := time.Duration(config.GetAppConfig().TokenLifetimeHours) * time.Hour
	if err := user.GenerateToken(lifetime); err != nil {
		colors.PrintError("Failed to generate token for user %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, AuthResponse{
			Success: false,
			Error:   "Failed to generate authentication token",
			Message: "Please try again later",
		})
		return
	}

	// Save token to database
	if err := db.GetDB().Save(&user).Error; err != nil {
		colors.PrintError("Failed to save token for user %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, AuthResponse{
			Success: false,
			Error:   "Failed to save authentication token",
			Message: "Please try again later",
		})
		return
	}

	colors.PrintSuccess("User %s logged in successfully", req.Username)
	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Welcome, " + user.FullName() + "!",
		Token:   *user.Token,
		User:    user.ToSafeUser(),
	})
}

// Logout invalidates the user's token
func (ac *AuthController) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, AuthResponse{
			Success: false,
			Error:   "Unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	user.ClearToken()
	if err := db.GetDB().Save(user).Error; err != nil {
		colors.PrintError("Failed to clear token for user %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, AuthResponse{
			Success: false,
			Error:   "Failed to logout",
			Message: "Please try again later",
		})
		return
	}

	colors.PrintInfo("User %s logged out successfully", user.Username)
	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "You have been logged out successfully",
	})
}

// Me returns the current authenticated user's information
func (ac *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, AuthResponse{
			Success: false,
			Error:   "Unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "User information retrieved successfully",
		User:    user.ToSafeUser(),
	})
}
