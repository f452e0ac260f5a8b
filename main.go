package main

import (
	"log"

	"focusplan-backend/cmd/api"
	authDomain "focusplan-backend/internal/auth/domain"
	authRepo "focusplan-backend/internal/auth/repository"
	authUsecase "focusplan-backend/internal/auth/usecase"
	taskDomain "focusplan-backend/internal/task/domain"
	taskRepo "focusplan-backend/internal/task/repository"
	taskUsecase "focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/config"
	"focusplan-backend/pkg/database"
	"focusplan-backend/pkg/gcal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	var (
		userRepository  authRepo.UserRepository
		tokenRepository authRepo.TokenRepository
		taskRepository  taskRepo.TaskRepository
	)

	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Auto-migrate schemas
		if err := db.AutoMigrate(&authDomain.User{}, &authDomain.TokenBundle{}, &taskDomain.Task{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		userRepository = authRepo.NewUserRepository(db)
		tokenRepository = authRepo.NewGormTokenRepository(db)
		taskRepository = taskRepo.NewGormTaskRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory storage")
		userRepository = authRepo.NewMemoryUserRepository()
		tokenRepository = authRepo.NewMemoryTokenRepository()
		taskRepository = taskRepo.NewMemoryTaskRepository()
	}

	// Initialize services
	calendarService := gcal.NewService()

	// Initialize usecases
	authUc := authUsecase.NewAuthUsecase(userRepository, tokenRepository, cfg)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository, calendarService, authUc, cfg.DefaultCalendarID)

	// Initialize handler and start server
	handler := api.NewHandler(authUc, taskUc, calendarService, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
