package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware อนุญาต origins จาก CORS_ORIGINS (คั่นด้วย comma, "*" = ทุก origin)
func CorsMiddleware(origins string) fiber.Handler {
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,HEAD",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		// credentials ใช้กับ wildcard ไม่ได้
		AllowCredentials: origins != "*",
	})
}
