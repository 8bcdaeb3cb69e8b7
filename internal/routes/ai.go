package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/handlers"
	"github.com/yasyhadav121/codecrack/internal/middleware"
)

func RegisterAIRoutes(r gin.IRouter) {
	ai := r.Group("/ai")
	ai.Use(middleware.UserMiddleware(), middleware.ChatRateLimit())
	{
		ai.POST("/chat", handlers.Chat)
	}
}
