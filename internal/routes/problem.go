package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/handlers"
	"github.com/yasyhadav121/codecrack/internal/middleware"
)

func RegisterProblemRoutes(r gin.IRouter) {
	problem := r.Group("/problem")
	problem.Use(middleware.UserMiddleware())
	{
		problem.GET("/getAllProblem", handlers.GetAllProblem)
		problem.GET("/problemById/:id", handlers.ProblemByID)
		problem.GET("/problemSolvedByUser", handlers.ProblemSolvedByUser)
		problem.GET("/submittedProblem/:id", handlers.SubmittedProblem)

		admin := problem.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/create", handlers.CreateProblem)
			admin.PUT("/update/:id", handlers.UpdateProblem)
			admin.DELETE("/delete/:id", handlers.DeleteProblem)
		}
	}
}
