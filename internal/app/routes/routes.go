package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vhoang/advisorhub/internal/app/controllers"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/app/models/dto"
	"github.com/vhoang/advisorhub/internal/middleware"
)

// SetupRouter configures all application routes. basePath is usually empty;
// the portal client calls the endpoints at the server root.
func SetupRouter(
	router *gin.Engine,
	basePath string,
	authController *controllers.AuthController,
	questionController *controllers.QuestionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	root := router.Group(basePath)

	// --- Public auth routes ---
	root.POST("/login", authController.Login)
	root.POST("/register", authController.Register)
	root.POST("/forgot-password", authController.ForgotPassword)
	root.POST("/reset-password", authController.ResetPassword)

	// --- Authenticated routes ---
	authenticated := root.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		questions := authenticated.Group("/questions")
		{
			questions.GET("", questionController.ListQuestions)
			questions.GET("/:id", questionController.GetQuestion)
			questions.GET("/:id/answers", questionController.ListAnswers)

			// Students post and edit their own questions
			questionsStudent := questions.Group("")
			questionsStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				questionsStudent.POST("", questionController.CreateQuestion)
				questionsStudent.PUT("/:id", questionController.UpdateQuestion)
			}

			// Advisors answer questions and move them through the workflow
			questionsAdvisor := questions.Group("")
			questionsAdvisor.Use(authMiddleware.RoleRequired(string(models.RoleAdvisor)))
			{
				questionsAdvisor.POST("/:id/answers", questionController.CreateAnswer)
				questionsAdvisor.PUT("/:id/status", questionController.UpdateStatus)
			}
		}

		authenticated.GET("/categories", questionController.ListCategories)
	}

	// Health check endpoint (public)
	root.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
	})
}
