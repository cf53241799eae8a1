package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"petreserve-backend/internal/api"
	"petreserve-backend/internal/config"
	"petreserve-backend/internal/logger"
	"petreserve-backend/internal/repository/postgres"
	"petreserve-backend/internal/security"
	"petreserve-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PetReserve Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWTTTL())

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromName,
		cfg.SendGrid.FromAddr,
	)

	// Initialize Services
	transitionSvc := service.NewTransitionService(store.ReservationRepository)
	reservationSvc := service.NewReservationService(store.ReservationRepository, transitionSvc, emailSvc)
	handoverSvc := service.NewHandoverService(
		store.ReservationRepository,
		transitionSvc,
		emailSvc,
		cfg.OTPTTL(),
		cfg.OTP.MaxAttempts,
	)
	authSvc := service.NewAuthService(store.StaffRepository, tokenManager)

	// Initialize HTTP handlers
	reservationHandler := api.NewReservationHandler(reservationSvc, transitionSvc)
	handoverHandler := api.NewHandoverHandler(handoverSvc)
	authHandler := api.NewAuthHandler(authSvc)

	router := api.NewRouter(reservationHandler, handoverHandler, authHandler, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
