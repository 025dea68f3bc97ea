package app

import (
	"context"
	"errors"
	"fmt"

	"casting_backend/internal/auth"
	"casting_backend/internal/bot"
	"casting_backend/internal/config"
	"casting_backend/internal/handlers"
	"casting_backend/internal/logger"
	"casting_backend/internal/middleware"
	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/routes"
	"casting_backend/internal/services"
	"casting_backend/internal/storage"
	"casting_backend/internal/validator"
	"casting_backend/internal/workers"

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

	if err := gormDB.AutoMigrate(
		&models.Admin{},
		&models.PasswordResetToken{},
		&models.ActivityLog{},
		&models.City{},
		&models.Applicant{},
		&models.Photo{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin", "error", err)
	}
	if err := seedDefaultCities(gormDB); err != nil {
		logger.Fatal("Failed to seed cities", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter, botApp := SetupRouter(ctx, cfg, gormDB)

	if cfg.Bot.Token != "" && cfg.Bot.UseLongPoll {
		go botApp.Run(ctx)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает граф зависимостей и возвращает готовый Gin
// вместе с ботом. Бот без токена простаивает, но маршруты управления
// им доступны.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *bot.BotApp) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// --- Репозитории ---
	adminRepo := repositories.NewAdminRepository(gormDB)
	applicantRepo := repositories.NewApplicantRepository(gormDB)
	cityRepo := repositories.NewCityRepository(gormDB)
	tokenRepo := repositories.NewResetTokenRepository(gormDB)
	logRepo := repositories.NewActivityLogRepository(gormDB)

	codes := auth.NewCodeStore()

	// --- Сервисы ---
	authService := services.NewAuthService(adminRepo, tokenRepo, codes)
	userService := services.NewUserService(applicantRepo, logRepo, storageInstance)
	cityService := services.NewCityService(cityRepo)
	adminService := services.NewAdminService(adminRepo, applicantRepo, logRepo)
	fileService := services.NewFileService(storageInstance)

	// --- Бот ---
	// BotApp создается всегда: без токена он отвечает ErrBotUnavailable,
	// а токен можно задать позже через POST /api/bot/update-token.
	sessions := bot.NewSessionStore()
	botApp, err := bot.NewBotApp(cfg.Bot.Token, authService, userService, cityService, fileService, sessions)
	if err != nil {
		logger.Fatal("Failed to initialize telegram bot", "error", err)
	}
	if cfg.Bot.Token == "" {
		logger.Warn("BOT_TOKEN is not set, telegram bot is idle until a token is provided")
	}

	// --- Фоновая чистка ---
	workers.NewCleanupWorker(tokenRepo, codes).Start(ctx)

	// --- Хэндлеры ---
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:  handlers.NewAuthHandler(baseHandler, authService),
		UserHandler:  handlers.NewUserHandler(baseHandler, userService, fileService),
		CityHandler:  handlers.NewCityHandler(baseHandler, cityService),
		AdminHandler: handlers.NewAdminHandler(baseHandler, adminService),
		BotHandler:   handlers.NewBotHandler(baseHandler, botApp),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg)

	return ginRouter, botApp
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.Admin
	result := tx.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin: %w", result.Error)
	}

	logger.Warn("No admin found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.Admin{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Name:         "Super Admin",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return tx.Commit().Error
}

// seedDefaultCities наполняет пустой справочник городов
func seedDefaultCities(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.City{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding default cities")

	cities := []models.City{
		{Name: "Toshkent", NameEn: "Tashkent", NameRu: "Ташкент", SortOrder: 1},
		{Name: "Samarqand", NameEn: "Samarkand", NameRu: "Самарканд", SortOrder: 2},
		{Name: "Buxoro", NameEn: "Bukhara", NameRu: "Бухара", SortOrder: 3},
		{Name: "Andijon", NameEn: "Andijan", NameRu: "Андижан", SortOrder: 4},
		{Name: "Namangan", NameEn: "Namangan", NameRu: "Наманган", SortOrder: 5},
		{Name: "Farg'ona", NameEn: "Fergana", NameRu: "Фергана", SortOrder: 6},
		{Name: "Nukus", NameEn: "Nukus", NameRu: "Нукус", SortOrder: 7},
		{Name: "Xiva", NameEn: "Khiva", NameRu: "Хива", SortOrder: 8},
		{Name: "Qarshi", NameEn: "Karshi", NameRu: "Карши", SortOrder: 9},
		{Name: "Termiz", NameEn: "Termez", NameRu: "Термез", SortOrder: 10},
	}
	for i := range cities {
		cities[i].Country = "Uzbekistan"
		cities[i].IsActive = true
	}

	return db.Create(&cities).Error
}
