package routes

import (
	"github.com/gofiber/fiber/v2"

	"study-tracker/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, d Deps) {
	auth := api.Group("/auth")

	auth.Post("/register", d.Handlers.UserHandler.Register)
	if d.LoginLimiter != nil {
		auth.Post("/login", d.LoginLimiter.Handler(), d.Handlers.UserHandler.Login)
	} else {
		auth.Post("/login", d.Handlers.UserHandler.Login)
	}

	auth.Get("/me", middleware.Protected(d.UserService), d.Handlers.UserHandler.GetProfile)
}
