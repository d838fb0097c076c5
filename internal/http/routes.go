package http

import (
	"repaircafe_server/internal/http/controllers"
	"repaircafe_server/internal/http/middleware"
	"repaircafe_server/internal/http/realtime"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine) {
	authController := controllers.NewAuthController()
	userController := controllers.NewUserController()
	deviceController := controllers.NewDeviceController()
	labelController := controllers.NewLabelController()
	dashboardController := controllers.NewDashboardController()

	// WebSocket endpoint for live dashboard updates
	router.GET("/ws", realtime.HandleWebSocket)

	// API version 1
	v1 := router.Group("/api/v1")
	{
		// Public authentication routes (no middleware)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
		}

		// Protected authentication routes (require auth)
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.AuthMiddleware())
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.GET("/me", authController.Me)
		}

		// Device routes (any authenticated user)
		devices := v1.Group("/devices")
		devices.Use(middleware.AuthMiddleware())
		{
			devices.GET("", deviceController.GetDevices)
			devices.POST("", deviceController.CreateDevice)
			devices.GET("/reminders", deviceController.GetReminders)
			devices.GET("/intakers", deviceController.GetIntakers)
			devices.GET("/:device_id", deviceController.GetDevice)
			devices.PUT("/:device_id/repair", deviceController.UpdateRepairInfo)
			devices.GET("/:device_id/label", labelController.GetLabel)
		}

		// User management routes (active admins only)
		users := v1.Group("/users")
		users.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
		{
			users.GET("", userController.GetUsers)
			users.POST("", userController.CreateUser)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthMiddleware())
		{
			dashboard.GET("/stats", dashboardController.GetDashboardStats)
		}
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"message":   "Repair Café Server is running",
			"websocket": "/ws",
			"api":       "/api/v1",
			"auth": gin.H{
				"login":  "/api/v1/auth/login",
				"me":     "/api/v1/auth/me",
				"logout": "/api/v1/auth/logout",
			},
		})
	})
}
