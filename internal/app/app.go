package app

import (
	"context"
	"fmt"

	"workpush/internal/config"
	"workpush/internal/handlers"
	"workpush/internal/logger"
	"workpush/internal/middleware"
	"workpush/internal/models"
	"workpush/internal/push"
	"workpush/internal/repositories"
	"workpush/internal/routes"
	"workpush/internal/services"
	"workpush/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.NotificationSettings{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	sender, err := push.NewFCMClient(
		context.Background(),
		cfg.FCM.ProjectID,
		cfg.FCM.CredentialsFile,
		fcmOptions(cfg)...,
	)
	if err != nil {
		logger.Fatal("Failed to initialize FCM client", "error", err)
	}
	logger.Info("FCM client initialized", "project_id", cfg.FCM.ProjectID)

	ginRouter := SetupRouter(cfg, gormDB, sender)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers into a gin engine.
// The push sender is injected so tests can substitute a fake transport.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sender push.Sender) *gin.Engine {
	serviceContainer := initializeServices(gormDB, sender)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(gormDB *gorm.DB, sender push.Sender) *services.ServiceContainer {
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)
	settingsRepo := repositories.NewSettingsRepository(gormDB)

	deliveryService := services.NewDeliveryService(notificationRepo, userRepo, settingsRepo, sender)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, deliveryService)
	settingsService := services.NewSettingsService(settingsRepo, userRepo)
	userService := services.NewUserService(userRepo)

	return &services.ServiceContainer{
		NotificationService: notificationService,
		SettingsService:     settingsService,
		UserService:         userService,
		DeliveryService:     deliveryService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService, services.DeliveryService),
		SettingsHandler:     handlers.NewSettingsHandler(baseHandler, services.SettingsService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func fcmOptions(cfg *config.Config) []push.FCMOption {
	var opts []push.FCMOption
	if cfg.FCM.Endpoint != "" {
		opts = append(opts, push.WithEndpoint(cfg.FCM.Endpoint))
	}
	return opts
}
