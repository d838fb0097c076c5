package http

import (
	"crypto/tls"
	"net/http"
	"os"

	"repaircafe_server/internal/http/realtime"
	"repaircafe_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	port   string
}

// NewServer creates a new HTTP server instance
func NewServer(port string) *Server {
	// Set Gin to release mode to reduce debug output
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Only add logger middleware if LOG_HTTP is set to true
	if os.Getenv("LOG_HTTP") == "true" {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	// Initialize WebSocket hub for live dashboard updates
	realtime.InitializeHub()

	// Setup routes
	SetupRoutes(router)

	return &Server{
		router: router,
		port:   port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	colors.PrintServer("🌐", "HTTP REST API Server starting on port %s", s.port)
	colors.PrintServer("🔗", "WebSocket endpoint available at /ws for dashboard updates")

	// Check if HTTPS is enabled
	if os.Getenv("HTTPS_ENABLED") == "true" {
		return s.startHTTPS()
	}

	return s.router.Run(":" + s.port)
}

// startHTTPS starts the server with HTTPS
func (s *Server) startHTTPS() error {
	certFile := os.Getenv("SSL_CERT_FILE")
	keyFile := os.Getenv("SSL_KEY_FILE")

	if certFile == "" || keyFile == "" {
		colors.PrintError("SSL_CERT_FILE and SSL_KEY_FILE environment variables must be set for HTTPS")
		colors.PrintWarning("Falling back to HTTP mode")
		return s.router.Run(":" + s.port)
	}

	if _, err := os.Stat(certFile); os.IsNotExist(err) {
		colors.PrintError("SSL certificate file not found: %s", certFile)
		colors.PrintWarning("Falling back to HTTP mode")
		return s.router.Run(":" + s.port)
	}

	if _, err := os.Stat(keyFile); os.IsNotExist(err) {
		colors.PrintError("SSL key file not found: %s", keyFile)
		colors.PrintWarning("Falling back to HTTP mode")
		return s.router.Run(":" + s.port)
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	server := &http.Server{
		Addr:      ":" + s.port,
		Handler:   s.router,
		TLSConfig: tlsConfig,
	}

	colors.PrintServer("🔒", "HTTPS server starting on port %s", s.port)
	return server.ListenAndServeTLS(certFile, keyFile)
}

// CORSMiddleware handles Cross-Origin Resource Sharing
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
