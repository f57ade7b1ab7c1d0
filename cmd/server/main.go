package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/campushub/campus-events-api/internal/audit"
	"github.com/campushub/campus-events-api/internal/auth"
	"github.com/campushub/campus-events-api/internal/config"
	"github.com/campushub/campus-events-api/internal/database"
	"github.com/campushub/campus-events-api/internal/engine"
	"github.com/campushub/campus-events-api/internal/handlers"
	"github.com/campushub/campus-events-api/internal/notifier"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Notifier
	var eventNotifier notifier.Notifier
	discordNotifier, err := notifier.NewDiscordNotifier(cfg)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	} else {
		eventNotifier = discordNotifier
	}

	// Initialize Engine and Handlers
	ruleEngine := engine.New(db, engine.SystemClock(), audit.NewRecorder(), logger)
	authHandler := auth.NewAuthHandler(cfg, db)
	collegeHandler := handlers.NewCollegeHandler(db, authHandler)
	rosterHandler := handlers.NewRosterHandler(db, authHandler)
	eventHandler := handlers.NewEventHandler(ruleEngine, eventNotifier, authHandler, logger)
	registrationHandler := handlers.NewRegistrationHandler(ruleEngine, logger)
	attendanceHandler := handlers.NewAttendanceHandler(ruleEngine, authHandler)
	feedbackHandler := handlers.NewFeedbackHandler(ruleEngine)
	apiKeyHandler := handlers.NewAPIKeyHandler(db, authHandler)

	// Initialize Router
	r := chi.NewRouter()
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-KEY"},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}

	// Register Routes
	handlers.RegisterRoutes(r, authHandler,
		collegeHandler, rosterHandler, eventHandler,
		registrationHandler, attendanceHandler, feedbackHandler, apiKeyHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
