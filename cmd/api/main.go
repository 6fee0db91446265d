package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"study-tracker/interfaces/api/handlers"
	"study-tracker/interfaces/api/middleware"
	"study-tracker/interfaces/api/routes"
	wshandler "study-tracker/interfaces/api/websocket"
	"study-tracker/pkg/di"
	"study-tracker/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		// ใช้ panic เพราะ logger อาจยังไม่ถูก init
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		AppName:               cfg.App.Name,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           15 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Setup middleware (order matters!)
	app.Use(middleware.RequestIDMiddleware()) // ต้องมาก่อน logger
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.MetricsMiddleware(container.Metrics))
	app.Use(middleware.CorsMiddleware(cfg.CORS.Origins))

	services := container.GetHandlerServices()
	routes.SetupRoutes(app, routes.Deps{
		Handlers:     handlers.NewHandlers(services),
		UserService:  services.UserService,
		Pomodoro:     wshandler.NewPomodoroHandler(services.PomodoroService),
		LoginLimiter: container.LoginLimiter,
		Gatherer:     container.Registry,
		ServiceName:  cfg.App.Name,
		HealthChecks: container.HealthChecks(),
	})

	setupGracefulShutdown(app, container)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"store", cfg.Store.Driver,
	)
	logger.Info("Endpoints available",
		"health", "http://localhost:"+port+"/health",
		"api", "http://localhost:"+port+"/api",
		"pomodoro", "ws://localhost:"+port+"/ws/pomodoro",
		"metrics", "http://localhost:"+port+"/metrics",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Warn("HTTP shutdown did not finish cleanly", "error", err)
		}

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
