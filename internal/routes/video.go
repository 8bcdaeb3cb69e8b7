package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/handlers"
	"github.com/yasyhadav121/codecrack/internal/middleware"
)

func RegisterVideoRoutes(r gin.IRouter) {
	video := r.Group("/video")
	video.Use(middleware.UserMiddleware(), middleware.AdminMiddleware())
	{
		video.GET("/create/:id", handlers.GenerateUploadSignature)
		video.POST("/save", handlers.SaveVideoMetadata)
		video.DELETE("/delete/:id", handlers.DeleteVideo)
	}
}
