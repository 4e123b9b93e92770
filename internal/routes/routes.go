package routes

import (
	"net/http"

	"collabhub_backend/internal/handlers"
	"collabhub_backend/internal/logger"
	"collabhub_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.VerificationHandler.RegisterRoutes(api)
		appHandlers.PromotionHandler.RegisterRoutes(api)
		appHandlers.OrderHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.OfferHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	// Регистрация WebSocket. Токен проверяется внутри ServeWS:
	// браузерный WebSocket API не умеет ставить Authorization-заголовок.
	ginRouter.GET("/ws", wsHandler.ServeWS)

	logger.Info("WebSocket route /ws registered")
}
