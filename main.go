package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/http"
	"repaircafe_server/pkg/colors"

	"github.com/joho/godotenv"
)

func main() {
	// Print attractive banner
	colors.PrintBanner()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		colors.PrintWarning("No .env file found, using system environment variables")
	} else {
		colors.PrintSuccess("Environment configuration loaded from .env file")
	}

	// Initialize database connection
	colors.PrintInfo("Initializing database connection...")
	if err := db.Initialize(); err != nil {
		colors.PrintError("Failed to initialize database: %v", err)
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	colors.PrintHeader("REPAIR CAFE SERVER INITIALIZATION")
	colors.PrintServer("🌐", "HTTP Server configured for port %s (REST API Access)", httpPort)

	errorChan := make(chan error, 1)

	go func() {
		httpServer := http.NewServer(httpPort)
		colors.PrintInfo("Starting HTTP Server for REST API...")

		colors.PrintSubHeader("Available REST API Endpoints")
		colors.PrintEndpoint("GET", "/health", "Health check endpoint")
		colors.PrintEndpoint("POST", "/api/v1/auth/login", "User authentication")
		colors.PrintEndpoint("POST", "/api/v1/auth/logout", "Invalidate token")
		colors.PrintEndpoint("GET", "/api/v1/auth/me", "Get user profile")

		colors.PrintSubHeader("Device Workflow Endpoints")
		colors.PrintEndpoint("GET", "/api/v1/devices", "Dashboard device list")
		colors.PrintEndpoint("POST", "/api/v1/devices", "Register new device (intake)")
		colors.PrintEndpoint("GET", "/api/v1/devices/reminders", "Devices needing attention")
		colors.PrintEndpoint("GET", "/api/v1/devices/intakers", "Intaker filter options")
		colors.PrintEndpoint("GET", "/api/v1/devices/:device_id", "Device details")
		colors.PrintEndpoint("PUT", "/api/v1/devices/:device_id/repair", "Repair station update")
		colors.PrintEndpoint("GET", "/api/v1/devices/:device_id/label", "Printable barcode label")
		colors.PrintEndpoint("GET", "/api/v1/dashboard/stats", "Workshop counters")

		colors.PrintSubHeader("User Management Endpoints (Admin)")
		colors.PrintEndpoint("GET", "/api/v1/users", "List all users")
		colors.PrintEndpoint("POST", "/api/v1/users", "Create new user")
		colors.PrintEndpoint("PUT", "/api/v1/users/:id", "Edit user")
		colors.PrintEndpoint("DELETE", "/api/v1/users/:id", "Delete user")

		colors.PrintSubHeader("WebSocket Connection")
		colors.PrintEndpoint("GET", "/ws", "Live dashboard device updates")

		if err := httpServer.Start(); err != nil {
			errorChan <- err
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either an error or shutdown signal
	select {
	case err := <-errorChan:
		colors.PrintError("Server startup failed: %v", err)
		return
	case <-quit:
		colors.PrintShutdown()
		return
	}
}
