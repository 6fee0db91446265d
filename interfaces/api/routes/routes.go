package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"study-tracker/domain/services"
	"study-tracker/interfaces/api/handlers"
	"study-tracker/interfaces/api/middleware"
	wshandler "study-tracker/interfaces/api/websocket"
)

// Deps is everything the route table needs besides the handlers
type Deps struct {
	Handlers     *handlers.Handlers
	UserService  services.UserService
	Pomodoro     *wshandler.PomodoroHandler
	LoginLimiter *middleware.LoginRateLimiter
	// Gatherer nil = ไม่เปิด /metrics
	Gatherer     prometheus.Gatherer
	ServiceName  string
	HealthChecks map[string]HealthCheck
}

func SetupRoutes(app *fiber.App, d Deps) {
	SetupHealthRoutes(app, d.ServiceName, d.HealthChecks)
	SetupMetricsRoutes(app, d.Gatherer)

	api := app.Group("/api")
	SetupAuthRoutes(api, d)
	SetupTaskRoutes(api, d)

	SetupWebSocketRoutes(app, d)

	// ต้องอยู่ท้ายสุด
	app.Use(middleware.NotFound())
}
