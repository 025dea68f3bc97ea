package routes

import (
	"casting_backend/internal/config"
	"casting_backend/internal/handlers"
	"casting_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты приложения.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	cfg *config.Config,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CityHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
		appHandlers.BotHandler.RegisterRoutes(api)
	}

	// Отдача загруженных фото
	ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	logger.Info("Static uploads route registered", "url", cfg.Storage.BaseURL, "path", cfg.Storage.BasePath)
}
