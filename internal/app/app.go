package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collabhub_backend/internal/config"
	"collabhub_backend/internal/email"
	"collabhub_backend/internal/handlers"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/metrics"
	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/routes"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/validator"
	"collabhub_backend/internal/workers"
	"collabhub_backend/pkg/redis"
	"collabhub_backend/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	// Redis нужен только для идемпотентности, без него работаем в degraded-режиме
	if cfg.Redis.URL != "" {
		if err := redis.Init(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Warn("Redis unavailable, idempotency keys disabled", "error", err)
		} else {
			logger.Info("Redis connected")
		}
	}

	ginRouter, svc := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, svc)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полный HTTP-стек. Возвращает также контейнер
// сервисов: он нужен фоновым воркерам.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	// 1. WebSocket менеджер - транспорт realtime-событий
	wsManager := ws.NewManager()
	go wsManager.Run()

	// 2. Репозитории и сервисы
	repoContainer := repositories.NewContainer(gormDB)
	serviceContainer := services.NewServiceContainer(repoContainer, buildEmailProvider(cfg), wsManager)

	// 3. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer)
	wsHandler := ws.NewHandler(wsManager, serviceContainer.ChatService)

	// 4. Gin
	ginRouter := initializeGinRouter(cfg)

	// 5. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter, serviceContainer
}

// buildEmailProvider выбирает SMTP либо mock, если SMTP не настроен.
func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return email.NewMockProvider()
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	logger.Info("SMTP provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeHandlers(svc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, svc.ProfileService),
		VerificationHandler: handlers.NewVerificationHandler(baseHandler, svc.VerificationService),
		PromotionHandler:    handlers.NewPromotionHandler(baseHandler, svc.PromotionService),
		OrderHandler:        handlers.NewOrderHandler(baseHandler, svc.OrderService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, svc.ChatService),
		OfferHandler:        handlers.NewOfferHandler(baseHandler, svc.OfferService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = metrics.DefaultNamespace
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware(metrics.Registry(namespace)))
	return router
}

func startWorkers(ctx context.Context, svc *services.ServiceContainer) {
	m := metrics.Registry(metrics.DefaultNamespace)

	promotionWorker := workers.NewPromotionWorker(svc.PromotionService, 10*time.Minute, m)
	go promotionWorker.Run(ctx)

	notificationWorker := workers.NewNotificationWorker(svc.NotificationService, time.Hour, 30*24*time.Hour, m)
	go notificationWorker.Run(ctx)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.CreatorProfile{},
		&models.BrandProfile{},
		&models.CreatorVerification{},
		&models.BrandVerification{},
		&models.Promotion{},
		&models.PromotionApplication{},
		&models.Order{},
		&models.WorkSubmission{},
		&models.Payment{},
		&models.Conversation{},
		&models.Message{},
		&models.Offer{},
		&models.Notification{},
	)
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return nil
}
