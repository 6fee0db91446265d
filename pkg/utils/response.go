package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
)

// ========== Error Code Constants ==========

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
)

// ========== Success Responses ==========

// SuccessResponse ส่ง data เป็น body ตรงๆ (ไม่มี envelope)
func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func MessageResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.MessageResponse{Msg: msg})
}

// ========== Error Responses ==========

func ErrorResponse(c *fiber.Ctx, statusCode int, code, message, detail string) error {
	return c.Status(statusCode).JSON(dto.MessageResponse{
		Msg:   message,
		Code:  code,
		Error: detail,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, ErrCodeValidation, message, "")
}

func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, ErrCodeBadRequest, message, "")
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return ErrorResponse(c, fiber.StatusUnauthorized, ErrCodeUnauthorized, message, "")
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return ErrorResponse(c, fiber.StatusNotFound, ErrCodeNotFound, message, "")
}

func TooManyRequestsResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusTooManyRequests, ErrCodeRateLimited, message, "")
}

func InternalServerErrorResponse(c *fiber.Ctx, detail string) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, ErrCodeInternalError, "Server error", detail)
}

// StatusForKind คืน HTTP status ของ apperror.Kind
func StatusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConflict:
		return fiber.StatusBadRequest
	case apperror.KindAuth:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func codeForKind(kind apperror.Kind) string {
	switch kind {
	case apperror.KindValidation:
		return ErrCodeValidation
	case apperror.KindConflict:
		return ErrCodeConflict
	case apperror.KindAuth:
		return ErrCodeUnauthorized
	case apperror.KindNotFound:
		return ErrCodeNotFound
	case apperror.KindRateLimited:
		return ErrCodeRateLimited
	default:
		return ErrCodeInternalError
	}
}

// AppErrorResponse maps a service error to its JSON answer. Storage
// failures carry the underlying cause in "error".
func AppErrorResponse(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return InternalServerErrorResponse(c, err.Error())
	}

	detail := ""
	if appErr.Kind == apperror.KindStorage && appErr.Err != nil {
		detail = appErr.Err.Error()
	}
	msg := appErr.Message
	if msg == "" {
		msg = "Server error"
	}
	return ErrorResponse(c, StatusForKind(appErr.Kind), codeForKind(appErr.Kind), msg, detail)
}
