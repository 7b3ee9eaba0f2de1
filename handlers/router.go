package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/08Ankit28/AI-Guru/services"
)

// NewRouter wires the API routes, health check and middleware.
// completionEnabled is only reported by /health.
func NewRouter(completer services.Completer, completionEnabled bool, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), Recovery(logger), CORS())

	chatHandler := NewChatHandler(completer, logger)
	socketHandler := NewSocketHandler(completer, logger)

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.GET("/chat/ws", socketHandler.Serve)
	}

	completion := "disabled"
	if completionEnabled {
		completion = "enabled"
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "completion": completion})
	})

	return router
}
