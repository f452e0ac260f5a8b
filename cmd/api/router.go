package api

import (
	"net/http"

	assistantDelivery "focusplan-backend/internal/assistant/delivery"
	"focusplan-backend/internal/auth/delivery"
	authUsecase "focusplan-backend/internal/auth/usecase"
	calendarDelivery "focusplan-backend/internal/calendar/delivery"
	taskDelivery "focusplan-backend/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, taskHandler *taskDelivery.TaskHandler, syncProxyHandler *taskDelivery.SyncProxyHandler, calendarHandler *calendarDelivery.CalendarHandler, assistantHandler *assistantDelivery.AssistantHandler) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Stateless sync endpoint: the caller supplies its own Google token
		api.POST("/sync-task", syncProxyHandler.SyncTask)
		api.OPTIONS("/sync-task", syncProxyHandler.Preflight)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/google/url", authHandler.GoogleAuthURL)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/session", delivery.AuthMiddleware(authUsecase), authHandler.Session)
			auth.GET("/status", delivery.AuthMiddleware(authUsecase), authHandler.Status)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
			auth.POST("/disconnect", delivery.AuthMiddleware(authUsecase), authHandler.Disconnect)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUsecase))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/conflicts", taskHandler.CheckConflicts)
			tasks.POST("/sync", taskHandler.SyncAllPending)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/sync", taskHandler.SyncTask)
		}

		// Calendar routes (protected)
		calendar := api.Group("/calendar")
		calendar.Use(delivery.AuthMiddleware(authUsecase))
		{
			calendar.GET("/calendars", calendarHandler.GetCalendars)
			calendar.GET("/events", calendarHandler.GetEvents)
			calendar.GET("/context", calendarHandler.GetContext)
		}

		// Assistant routes (protected)
		api.POST("/chat", delivery.AuthMiddleware(authUsecase), assistantHandler.Chat)
	}
}
