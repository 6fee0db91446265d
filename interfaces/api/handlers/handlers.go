package handlers

import (
	"study-tracker/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService     services.UserService
	TaskService     services.TaskService
	PomodoroService services.PomodoroService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	UserHandler *UserHandler
	TaskHandler *TaskHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		UserHandler: NewUserHandler(services.UserService),
		TaskHandler: NewTaskHandler(services.TaskService),
	}
}
