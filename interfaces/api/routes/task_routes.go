package routes

import (
	"github.com/gofiber/fiber/v2"

	"study-tracker/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, d Deps) {
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Protected(d.UserService))

	tasks.Get("/", d.Handlers.TaskHandler.GetUserTasks)
	tasks.Post("/", d.Handlers.TaskHandler.CreateTask)
	// static paths ก่อน /:id
	tasks.Get("/view", d.Handlers.TaskHandler.GetTaskView)
	tasks.Get("/stats", d.Handlers.TaskHandler.GetDashboard)
	tasks.Put("/:id", d.Handlers.TaskHandler.UpdateTask)
	tasks.Delete("/:id", d.Handlers.TaskHandler.DeleteTask)
}
