package api

import (
	"log"

	assistantDelivery "focusplan-backend/internal/assistant/delivery"
	assistantUsecasePkg "focusplan-backend/internal/assistant/usecase"
	authUsecase "focusplan-backend/internal/auth/usecase"
	calendarDelivery "focusplan-backend/internal/calendar/delivery"
	calendarUsecasePkg "focusplan-backend/internal/calendar/usecase"
	taskDelivery "focusplan-backend/internal/task/delivery"
	taskUsecasePkg "focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/ai"
	"focusplan-backend/pkg/config"
	"focusplan-backend/pkg/gcal"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	config           *config.Config
	taskHandler      *taskDelivery.TaskHandler
	syncProxyHandler *taskDelivery.SyncProxyHandler
	calendarHandler  *calendarDelivery.CalendarHandler
	assistantHandler *assistantDelivery.AssistantHandler
}

func NewHandler(authUc authUsecase.AuthUsecase, taskUc taskUsecasePkg.TaskUsecase, calendarSvc *gcal.Service, cfg *config.Config) *Handler {
	calendarUc := calendarUsecasePkg.NewCalendarUsecase(calendarSvc, authUc)

	aiService := ai.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. The chat assistant will be unavailable.")
	} else {
		log.Printf("Assistant service initialized with model: %s", cfg.OpenAIModel)
	}
	assistantUc := assistantUsecasePkg.NewAssistantUsecase(aiService, taskUc, calendarUc)

	return &Handler{
		authUsecase:      authUc,
		config:           cfg,
		taskHandler:      taskDelivery.NewTaskHandler(taskUc),
		syncProxyHandler: taskDelivery.NewSyncProxyHandler(calendarSvc, cfg.CORSOrigin),
		calendarHandler:  calendarDelivery.NewCalendarHandler(calendarUc),
		assistantHandler: assistantDelivery.NewAssistantHandler(assistantUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.taskHandler, h.syncProxyHandler, h.calendarHandler, h.assistantHandler)

	return r.Run(addr)
}
