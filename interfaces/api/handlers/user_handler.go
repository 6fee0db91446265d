package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
	"study-tracker/domain/services"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "email", req.Email, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID)

	return utils.SuccessResponse(c, dto.UserToUserResponse(user))
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email, "reason", err.Error())
		// bad credentials ตอบ 400 ไม่ใช่ 401 (401 ใช้กับ token เท่านั้น)
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Kind == apperror.KindAuth {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.ErrCodeUnauthorized, appErr.Message, "")
		}
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Login successful", "user_id", user.ID)

	return utils.SuccessResponse(c, &dto.LoginResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "No token")
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile lookup failed", "user_id", user.ID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}
