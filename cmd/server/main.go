package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentalops-backend/internal/api/http"
	"rentalops-backend/internal/config"
	"rentalops-backend/internal/jobs"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/messaging"
	"rentalops-backend/internal/repository/postgres"
	"rentalops-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental back-office server...", "address", cfg.GetServerAddress())

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	var messenger messaging.Messenger
	if cfg.Messaging.Provider == "gateway" {
		messenger = messaging.NewGatewayMessenger(cfg.Messaging.GatewayURL, cfg.Messaging.APIKey)
		logger.Info("Using SMS gateway messenger", "url", cfg.Messaging.GatewayURL)
	} else {
		messenger = messaging.NewConsoleMessenger()
		logger.Info("Using console messenger")
	}
	emailSender := messaging.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	bookingService := service.NewBookingService(
		store.BookingRepository,
		store.ExtensionRepository,
		store.SettingsRepository,
		cfg.Fees,
	)
	paymentService := service.NewPaymentService(
		store.BookingRepository,
		store.PaymentRepository,
		store.ExtensionRepository,
	)
	reminderService := service.NewReminderService(
		store.BookingRepository,
		store.CustomerRepository,
		store.VehicleRepository,
		store.ReminderLogRepository,
		store.SettingsRepository,
		messenger,
		cfg.Reminders,
	)

	jobRunner := jobs.NewJobRunner(reminderService, paymentService, store.BookingRepository, emailSender, cfg)

	handler := httpapi.NewHandler(bookingService, paymentService, jobRunner)
	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
