package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rental-ops-backend/internal/config"
	"rental-ops-backend/internal/jobs"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository/postgres"
	"rental-ops-backend/internal/scheduler"
	"rental-ops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'flag-unready-pickups', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	policy, err := cfg.Ops.Policy()
	if err != nil {
		log.Fatalf("Invalid ops policy: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Ops Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// Initialize Services
	emailService := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.OpsDeskEmail)
	pushService, err := service.NewPushService(context.Background(), cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize push notifications", "error", err)
		log.Fatalf("Failed to initialize push notifications: %v", err)
	}
	opsService := service.NewOpsService(service.OpsRepositories{
		Bookings:    store.BookingRepository,
		CheckIns:    store.CheckInRepository,
		Payments:    store.PaymentRepository,
		Agreements:  store.AgreementRepository,
		Walkarounds: store.WalkaroundRepository,
		Photos:      store.PhotoRepository,
		Preps:       store.PrepRepository,
		Dispatches:  store.DispatchRepository,
		Staff:       store.StaffRepository,
	}, emailService, pushService, policy)

	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Bookings: service.NewBookingService(store.BookingRepository),
		Ops:      opsService,
		Email:    emailService,
	}, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to build scheduler", "error", err)
		log.Fatalf("Failed to build scheduler: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.", "next_run", cronScheduler.NextRun())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "flag-unready-pickups":
		jobRunner.FlagUnreadyPickups()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - flag-unready-pickups\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
