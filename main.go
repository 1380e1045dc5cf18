// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	auditRepoPkg "slotify/database/repository/audit"
	availabilityRepoPkg "slotify/database/repository/availability"
	bookingRepoPkg "slotify/database/repository/booking"
	catalogRepoPkg "slotify/database/repository/catalog"
	exceptionRepoPkg "slotify/database/repository/exception"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/calendar"
	"slotify/services/catalog"
	"slotify/services/notification"
	"slotify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.SetupCORS(router)

	// Repositories.
	ruleRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	excRepo := exceptionRepoPkg.NewMongoExceptionRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	audRepo := auditRepoPkg.NewMongoAuditRepo()
	svcRepo := catalogRepoPkg.NewMongoCatalogRepo()

	if err := ruleRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := excRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure exception indexes: %v", err)
	}

	// Notification fan-out via asynq.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	notifier := notification.NewQueueNotificationService(asynqClient)

	// Services.
	calendarService := &calendar.DefaultCalendarService{
		Rules:      ruleRepo,
		Exceptions: excRepo,
		Bookings:   bookRepo,
		Audit:      audRepo,
		Catalog:    &catalog.DefaultCatalogService{Repo: svcRepo},
		Notifier:   notifier,
		Cache:      &calendar.RedisViewCache{Client: utils.GetCacheClient()},
	}

	calendarHandler := &handlers.CalendarHandler{Service: calendarService}
	routes.RegisterCalendarRoutes(router, calendarHandler)
	routes.RegisterPublicRoutes(router, calendarHandler)

	// Background worker delivering exception notices.
	cron.InitNoticeWorker(&notification.FCMSender{Client: utils.FCMClient})

	// Dependency health monitoring.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
