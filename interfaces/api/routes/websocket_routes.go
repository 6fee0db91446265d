package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"study-tracker/interfaces/api/middleware"
)

func SetupWebSocketRoutes(app *fiber.App, d Deps) {
	if d.Pomodoro == nil {
		return
	}
	app.Use("/ws/pomodoro", middleware.ProtectedWS(d.UserService), d.Pomodoro.WebSocketUpgrade)
	app.Get("/ws/pomodoro", websocket.New(d.Pomodoro.HandlePomodoro))
}
