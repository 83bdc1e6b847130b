package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "rentmart-backend/internal/api/http"
	"rentmart-backend/internal/cartstore"
	"rentmart-backend/internal/config"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository/postgres"
	"rentmart-backend/internal/security"
	"rentmart-backend/internal/service"
	"rentmart-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present; real env vars win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentMart Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	cartBlobs := cartstore.NewPostgresStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.SessionExpiryHours)

	// Initialize Image Storage
	logger.Info("Using local image storage", "upload_dir", cfg.Storage.UploadDir)
	imageStore, err := storage.NewLocalStore(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	authSvc := service.NewAuthService(store.UserRepository, store.NotificationRepository, tokenManager, emailSvc)
	productSvc := service.NewProductService(store.ProductRepository, store.UserRepository)
	cartSvc := service.NewCartService(cartBlobs, store.ProductRepository)
	pricingSvc := service.NewPricingService(store.CouponRepository, cfg.Pricing)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.ProductRepository,
		store.UserRepository,
		store.NotificationRepository,
		cartBlobs,
		pricingSvc,
		emailSvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Build router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Product:      productSvc,
		Cart:         cartSvc,
		Pricing:      pricingSvc,
		Order:        orderSvc,
		Notification: noteSvc,
		Tokens:       tokenManager,
		Images:       imageStore,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
