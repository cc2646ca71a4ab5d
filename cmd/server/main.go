package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcapi "rental-ops-backend/internal/api/grpc"
	"rental-ops-backend/internal/api/grpc/interceptor"
	httpapi "rental-ops-backend/internal/api/http"
	"rental-ops-backend/internal/config"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository/postgres"
	"rental-ops-backend/internal/security"
	"rental-ops-backend/internal/service"
	"rental-ops-backend/internal/storage"

	_ "github.com/lib/pq"
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
	policy, err := cfg.Ops.Policy()
	if err != nil {
		log.Fatalf("Invalid ops policy: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Ops Console backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Ops policy", "minimum_age", policy.MinimumAge, "min_prep_photos", policy.MinPrepPhotos, "required_photo_types", len(policy.RequiredPhotoTypes))

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Photo Storage
	logger.Info("Using local photo storage", "upload_dir", cfg.Storage.UploadDir)
	photoStore, err := storage.NewLocalStore(storage.Config{
		Type:         cfg.Storage.Type,
		UploadDir:    cfg.Storage.UploadDir,
		MaxFileBytes: cfg.Storage.MaxFileSizeMB << 20,
	})
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}

	// Initialize Services
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.OpsDeskEmail)
	pushSvc, err := service.NewPushService(context.Background(), cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize push notifications", "error", err)
		log.Fatalf("Failed to initialize push notifications: %v", err)
	}
	opsSvc := service.NewOpsService(service.OpsRepositories{
		Bookings:    store.BookingRepository,
		CheckIns:    store.CheckInRepository,
		Payments:    store.PaymentRepository,
		Agreements:  store.AgreementRepository,
		Walkarounds: store.WalkaroundRepository,
		Photos:      store.PhotoRepository,
		Preps:       store.PrepRepository,
		Dispatches:  store.DispatchRepository,
		Staff:       store.StaffRepository,
	}, emailSvc, pushSvc, policy)
	bookingSvc := service.NewBookingService(store.BookingRepository)
	photoSvc := service.NewPhotoService(store.BookingRepository, store.PhotoRepository, photoStore)
	authSvc := service.NewAuthService(store.StaffRepository, tokenManager)

	// HTTP console API
	handler := httpapi.NewHandler(opsSvc, bookingSvc, photoSvc, authSvc, db, cfg.Storage.MaxFileSizeMB<<20)
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(handler, tokenManager),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// gRPC health endpoint for the load balancer
	var grpcServer *grpc.Server
	if addr := cfg.GetGRPCAddress(); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", addr)
			log.Fatalf("Failed to listen: %v", err)
		}
		grpcServer = grpc.NewServer(
			grpc.ChainUnaryInterceptor(interceptor.UnaryRecovery(), interceptor.UnaryLogger()),
		)
		checker := grpcapi.NewHealthChecker(db, 15*time.Second)
		healthpb.RegisterHealthServer(grpcServer, checker.Server())
		reflection.Register(grpcServer)
		go checker.Run(ctx)

		go func() {
			logger.Info("gRPC health server listening", "address", addr)
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC server error", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("HTTP console API listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	logger.Info("Server stopped. Goodbye!")
}
