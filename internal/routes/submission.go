package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/handlers"
	"github.com/yasyhadav121/codecrack/internal/middleware"
)

func RegisterSubmissionRoutes(r gin.IRouter) {
	submission := r.Group("/submission")
	submission.Use(middleware.UserMiddleware(), middleware.ExecuteRateLimit())
	{
		submission.POST("/run/:id", handlers.RunCode)
		submission.POST("/submit/:id", handlers.SubmitCode)
	}
}
