package middleware

import (
	"net/http"
	"strings"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the authentication token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			colors.PrintWarning("Authentication failed: No Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		// Extract token from Bearer token format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			colors.PrintWarning("Authentication failed: Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Invalid authorization header format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		token := tokenParts[1]
		if token == "" {
			colors.PrintWarning("Authentication failed: Empty token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Token is required",
			})
			c.Abort()
			return
		}

		// Find user by token
		var user models.User
		if err := db.GetDB().Where("token = ?", token).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				colors.PrintWarning("Authentication failed: Invalid token")
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "Unauthorized",
					"message": "Invalid or expired token",
				})
			} else {
				colors.PrintError("Database error during authentication: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Internal server error",
					"message": "Authentication service unavailable",
				})
			}
			c.Abort()
			return
		}

		// Check if token is valid (not expired)
		if !user.IsTokenValid() {
			colors.PrintWarning("Authentication failed: Token expired for user %s", user.Username)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Token has expired",
			})
			c.Abort()
			return
		}

		// Disabled accounts keep their rows but lose access
		if !user.IsActive {
			colors.PrintWarning("Authentication failed: Account %s is disabled", user.Username)
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Forbidden",
				"message": "This account has been disabled",
			})
			c.Abort()
			return
		}

		// Set user in context for use in handlers
		c.Set("user", &user)
		c.Set("user_id", user.ID)

		colors.PrintDebug("Authentication successful for user %s (ID: %d)", user.Username, user.ID)
		c.Next()
	}
}

// AdminOnlyMiddleware ensures the authenticated user is an active admin
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userInterface, exists := c.Get("user")
		if !exists {
			colors.PrintWarning("Admin access denied: No authenticated user")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		user := userInterface.(*models.User)
		if !user.IsAdmin {
			colors.PrintWarning("Admin access denied: User %s is an operator", user.Username)
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Forbidden",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		colors.PrintDebug("Admin access granted for user %s", user.Username)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the request context
func CurrentUser(c *gin.Context) *models.User {
	userInterface, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := userInterface.(*models.User)
	if !ok {
		return nil
	}
	return user
}
