package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"study-tracker/domain/apperror"
	"study-tracker/domain/services"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/utils"
)

// Protected middleware validates the session token and sets user context.
// The token comes from the Authorization header, "Bearer " optional.
func Protected(userService services.UserService) fiber.Handler {
	return protect(userService, false)
}

// ProtectedWS ใช้กับ websocket: browser ส่ง header ไม่ได้ จึงรับ ?token= ด้วย
func ProtectedWS(userService services.UserService) fiber.Handler {
	return protect(userService, true)
}

func protect(userService services.UserService, allowQuery bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		if raw == "" && allowQuery {
			raw = c.Query("token")
		}

		userID, err := userService.VerifyToken(raw)
		if err != nil {
			var appErr *apperror.Error
			msg := "Invalid token"
			if errors.As(err, &appErr) && appErr.Message != "" {
				msg = appErr.Message
			}
			logger.WarnContext(c.UserContext(), "Token rejected", "path", c.Path(), "reason", msg)
			return utils.UnauthorizedResponse(c, msg)
		}

		c.Locals(utils.LocalsUserKey, &utils.UserContext{ID: userID})
		c.SetUserContext(logger.ContextWithUserID(c.UserContext(), userID.String()))

		return c.Next()
	}
}
