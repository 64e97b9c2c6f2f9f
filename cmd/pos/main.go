// cmd/pos/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/catalog"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/interfaces/http"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := newLogger(cfg)

	// Open the local store (persisted session)
	db, err := session.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	// Back-office API client
	gw, err := gateway.NewClient(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create back-office client: %v", err)
	}

	// Assemble the terminal
	sessions := session.NewManager(db, gw, logger)
	catalogSvc := catalog.NewService(gw, logger)
	term := terminal.New(sessions, catalogSvc, gw, logger)

	// Restore the persisted session, if any
	if err := term.Start(); err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	log.Println("✅ Terminal ready!")

	// Create and start HTTP server
	server := http.NewServer(cfg, term, gw)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Terminal shutdown completed")
}

// newLogger builds the application logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
