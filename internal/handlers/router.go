package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

type HandlerManager struct {
	settingsHandler *SettingsHandler
	questionHandler *QuestionHandler
	attemptHandler  *AttemptHandler
	adminHandler    *AdminHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		settingsHandler: NewSettingsHandler(serviceManager.Settings(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		attemptHandler:  NewAttemptHandler(serviceManager.Attempt(), logger),
		adminHandler:    NewAdminHandler(serviceManager.Auth(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		api.GET("/settings", hm.settingsHandler.GetSettings)
		api.PUT("/settings", hm.settingsHandler.UpdateSettings)

		questions := api.Group("/questions")
		{
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		attempts := api.Group("/attempts")
		{
			attempts.POST("", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/by-email", hm.attemptHandler.GetAttemptByEmail)
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.DELETE("/:id", hm.attemptHandler.DeleteAttempt)
		}

		api.POST("/admin/login", hm.adminHandler.Login)
	}
}
