package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"auto-concierge.backend/internal/config"
	"auto-concierge.backend/internal/infrastructure/jobs"
	"auto-concierge.backend/internal/infrastructure/repositories"
	"auto-concierge.backend/internal/interfaces/http/handlers"
	"auto-concierge.backend/internal/interfaces/http/middleware"
	"auto-concierge.backend/internal/usecases"
	"auto-concierge.backend/pkg/jwt"
	"auto-concierge.backend/pkg/logger"
	"auto-concierge.backend/pkg/mailer"
	"auto-concierge.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize mailer
	mail := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
		cfg.SMTP.FromName,
	)

	// Initialize repositories
	dealerRepo := repositories.NewDealerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	requestRepo := repositories.NewViewingRequestRepository(db)

	// Initialize reset token store
	resetStore := redis.NewResetTokenStore()

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(dealerRepo, jwtService, resetStore, mail, cfg.Admin.Username, cfg.Admin.Password, cfg.App.BaseURL)
	inventoryUsecase := usecases.NewInventoryUsecase(dealerRepo, vehicleRepo)
	requestUsecase := usecases.NewRequestUsecase(dealerRepo, vehicleRepo, requestRepo)
	adminUsecase := usecases.NewAdminUsecase(dealerRepo, vehicleRepo, requestRepo, mail)
	analyticsUsecase := usecases.NewAnalyticsUsecase(dealerRepo, vehicleRepo, requestRepo)
	billingUsecase := usecases.NewBillingUsecase(dealerRepo, mail)
	mediaUsecase := usecases.NewMediaUsecase(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
		cfg.Cloudinary.UploadFolder,
	)

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(inventoryUsecase, requestUsecase, cfg.App.BaseURL)
	dealerHandler := handlers.NewDealerHandler(authUsecase, inventoryUsecase, requestUsecase, analyticsUsecase, mediaUsecase)
	adminHandler := handlers.NewAdminHandler(authUsecase, adminUsecase, inventoryUsecase, requestUsecase, analyticsUsecase)
	billingWebhookHandler := handlers.NewBillingWebhookHandler(billingUsecase, cfg.Stripe.WebhookSecret)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trialJob := jobs.NewTrialExpiryJob(dealerRepo, mail)
	go trialJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.Metrics())

	applyCORSMiddleware(r, cfg.App.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		publicHandler:         publicHandler,
		dealerHandler:         dealerHandler,
		adminHandler:          adminHandler,
		billingWebhookHandler: billingWebhookHandler,
		authMiddleware:        middleware.RequireAuth(jwtService),
		activeDealer:          middleware.RequireActiveDealer(dealerRepo),
		adminAuth:             middleware.AdminAuth(jwtService, cfg.Admin.APIKey),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		trialJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Auto Concierge Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
