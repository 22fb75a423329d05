package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/lateshow/lateshow-api/internal/config"     // Internal config loader
	"github.com/lateshow/lateshow-api/internal/database"   // MySQL connection management
	"github.com/lateshow/lateshow-api/internal/handler"    // HTTP handlers
	"github.com/lateshow/lateshow-api/internal/queue"      // Broker consumer for appearance events
	"github.com/lateshow/lateshow-api/internal/repository" // Data access layer
	"github.com/lateshow/lateshow-api/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg) // Connect to MySQL and verify with a ping
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Wire repositories into the handler; the DB handle is passed in
	// explicitly rather than held in a package global.
	episodeRepo := repository.NewEpisodeRepo(db)
	guestRepo := repository.NewGuestRepo(db)
	appearanceRepo := repository.NewAppearanceRepo(db)
	h := handler.NewAPIHandler(episodeRepo, guestRepo, appearanceRepo)

	// Consume appearance.created events in the background; the consumer
	// runs its own reconnect loop and never takes the API down.
	go func() {
		if err := queue.StartAppearanceConsumer(cfg.AMQPURL); err != nil {
			log.Printf("appearance consumer stopped: %v", err)
		}
	}()

	e := echo.New()             // Create Echo instance
	router.RegisterRoutes(e, h) // Register application routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
