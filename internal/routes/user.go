package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/handlers"
	"github.com/yasyhadav121/codecrack/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	user := r.Group("/user")
	{
		user.POST("/register", middleware.AuthRateLimit(), handlers.Register)
		user.POST("/login", middleware.AuthRateLimit(), handlers.Login)

		protected := user.Group("")
		protected.Use(middleware.UserMiddleware())
		{
			protected.GET("/check", handlers.Check)
			protected.POST("/logout", handlers.Logout)
			protected.DELETE("/deleteProfile", handlers.DeleteProfile)
		}
	}
}
