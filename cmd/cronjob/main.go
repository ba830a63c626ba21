package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/jobs"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/messaging"
	"rentalops-backend/internal/repository/postgres"
	"rentalops-backend/internal/scheduler"
	"rentalops-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'return-reminders', 'overdue-alerts', 'reconcile-ledger')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cronjob runner...", "log_level", cfg.Log.Level)

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
	} else {
		messenger = messaging.NewConsoleMessenger()
	}
	emailSender := messaging.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

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

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner, cfg.Scheduler)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "return-reminders":
		jobRunner.SendReturnReminders()
	case "overdue-alerts":
		jobRunner.SendOverdueAlerts()
	case "reconcile-ledger":
		jobRunner.ReconcileLedger()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - return-reminders\n")
		fmt.Printf("  - overdue-alerts\n")
		fmt.Printf("  - reconcile-ledger\n")
		os.Exit(1)
	}
}
