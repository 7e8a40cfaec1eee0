package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/config"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/handler"
	"github.com/gearshare/service-rental/internal/platform/auth"
	"github.com/gearshare/service-rental/internal/platform/database"
	"github.com/gearshare/service-rental/internal/platform/health"
	"github.com/gearshare/service-rental/internal/platform/kafka"
	"github.com/gearshare/service-rental/internal/platform/logger"
	"github.com/gearshare/service-rental/internal/platform/middleware"
	"github.com/gearshare/service-rental/internal/platform/session"
	"github.com/gearshare/service-rental/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.ReviewModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Connect to Redis for sessions
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() { _ = rdb.Close() }()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	pingCancel()

	sessions := session.NewStore(rdb, cfg.SessionTTL)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)

	// Initialize application services
	pricing := bookingDomain.NewDailyRatePricing()
	authService := application.NewAuthService(userRepo, jwtManager, sessions, kafkaProducer, log)
	itemService := application.NewItemService(itemRepo, userRepo, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, pricing, kafkaProducer, log)
	reviewService := application.NewReviewService(reviewRepo, bookingRepo, log)

	// Start the user event consumer so denormalized host profiles on items
	// follow profile edits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaGroupPrefix + "rental-service"
	userConsumer := events.NewUserEventConsumer(cfg.KafkaBrokers, groupID, itemService, log)
	defer func() { _ = userConsumer.Close() }()

	go func() {
		log.Info("starting user event consumer")
		if err := userConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("user event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService, bookingService, reviewService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-rental")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup, jwtManager, sessions)
	itemHandler.RegisterRoutes(&router.RouterGroup, jwtManager, sessions)
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager, sessions)
	reviewHandler.RegisterRoutes(&router.RouterGroup, jwtManager, sessions)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager, sessions)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
