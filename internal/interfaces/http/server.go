// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/interfaces/http/middleware"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/interfaces/http/routes"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// Server is the shell-facing HTTP server. It binds to loopback; the display
// shell is its only client.
type Server struct {
	config     *config.Config
	gin        *gin.Engine
	httpServer *http.Server
	terminal   *terminal.Terminal
	gw         *gateway.Client
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, term *terminal.Terminal, gw *gateway.Client) *Server {
	return &Server{
		config:   cfg,
		terminal: term,
		gw:       gw,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin engine
	s.gin = gin.New()
	s.startedAt = time.Now()

	// Setup middleware
	s.setupMiddleware()

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr(),
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	log.Printf("🚀 POS terminal listening on %s", s.config.ListenAddr())
	log.Printf("🌐 Shell API base: http://%s/api", s.config.ListenAddr())
	log.Printf("📊 Health check: http://%s/health", s.config.ListenAddr())

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	log.Println("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.config))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// Only the local shell may talk to the terminal
	s.gin.Use(middleware.LocalOnly())

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.gin.GET("/health", s.healthCheck)

	// Shell API routes
	api := s.gin.Group("/api")

	routes.SetupRoutes(api, s.terminal, s.gw, s.config)
}

// healthCheck handles health check requests. The terminal has no hard
// dependency to probe; the back office is reported but a dead back office
// still leaves the terminal "healthy" (it degrades, it does not stop).
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(s.startedAt).String(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
		"logged_in":   s.terminal.Session() != nil,
	})
}
