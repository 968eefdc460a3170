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

	httpapi "motorent-backend/internal/api/http"
	"motorent-backend/internal/cache"
	"motorent-backend/internal/config"
	"motorent-backend/internal/logger"
	"motorent-backend/internal/outbox"
	"motorent-backend/internal/push"
	"motorent-backend/internal/queue"
	"motorent-backend/internal/repository/postgres"
	"motorent-backend/internal/security"
	"motorent-backend/internal/service"
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
	logger.Info("Starting Motorent Booking Engine...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize optional side-effect dependencies
	ctx := context.Background()
	pushSender, err := push.NewFCMSender(ctx, cfg.Firebase)
	if err != nil {
		logger.Error("Failed to initialize FCM, push disabled", "error", err)
	}
	emailSender := service.NewSendGridSender(cfg.SendGrid)
	positions := cache.NewPositionCache(cache.NewRedisClient(cfg.Redis))
	publisher := queue.NewPublisher(cfg.RabbitMQ)

	// Initialize Services
	notificationSvc := service.NewNotificationService(store.NotificationRepository, store.UserRepository, pushSender, emailSender)
	couponSvc := service.NewCouponService(store.CouponRepository)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.VehicleRepository, store.UserRepository, store.PriceSheetRepository, couponSvc)
	sheetSvc := service.NewPriceSheetService(store.PriceSheetRepository)
	locationSvc := service.NewLocationService(store.LocationRepository, positions)
	referralSvc := service.NewReferralService(store.PointsRepository, store.BookingRepository, store.UserRepository, notificationSvc)
	pointsSvc := service.NewPointsService(store.PointsRepository)

	// Start the outbox dispatcher
	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	dispatcher := outbox.NewDispatcher(store.OutboxRepository, store.BookingRepository, notificationSvc, referralSvc, pointsSvc, publisher, cfg.Outbox)
	go dispatcher.Run(dispatcherCtx)

	// Build the HTTP API
	router := httpapi.NewRouter(httpapi.Handlers{
		Booking:      httpapi.NewBookingHandler(bookingSvc),
		Location:     httpapi.NewLocationHandler(locationSvc),
		PriceSheet:   httpapi.NewPriceSheetHandler(sheetSvc),
		Notification: httpapi.NewNotificationHandler(notificationSvc, pointsSvc),
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			stopDispatcher()
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	stopDispatcher()
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
