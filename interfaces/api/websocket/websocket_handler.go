package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
	"study-tracker/domain/services"
	wsinfra "study-tracker/infrastructure/websocket"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/utils"
)

type PomodoroHandler struct {
	pomodoroService services.PomodoroService
}

func NewPomodoroHandler(pomodoroService services.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{pomodoroService: pomodoroService}
}

// WebSocketUpgrade ปล่อยผ่านเฉพาะ request ที่ขอ upgrade
func (h *PomodoroHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandlePomodoro runs one session for the lifetime of the connection
func (h *PomodoroHandler) HandlePomodoro(c *websocket.Conn) {
	user, ok := c.Locals(utils.LocalsUserKey).(*utils.UserContext)
	if !ok || user == nil {
		_ = c.WriteJSON(dto.NewPomodoroErrorMessage("No token"))
		_ = c.Close()
		return
	}

	ctx := logger.ContextWithUserID(context.Background(), user.ID.String())
	sink := wsinfra.NewConnSink(c)

	session, err := h.pomodoroService.Open(ctx, user.ID, sink)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open pomodoro session", "error", err)
		_ = sink.SendError("Server error")
		_ = sink.Close()
		return
	}
	defer func() {
		session.Close()
		_ = sink.Close()
	}()

	logger.InfoContext(ctx, "Pomodoro session opened")

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.DebugContext(ctx, "Pomodoro read ended", "error", err)
			return
		}

		var cmd dto.PomodoroCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			_ = sink.SendError("Invalid message")
			continue
		}

		if cmd.Action == "ping" {
			_ = sink.Send(fiber.Map{"type": "pong"})
			continue
		}

		if err := session.Handle(ctx, cmd); err != nil {
			msg := "Server error"
			var appErr *apperror.Error
			if errors.As(err, &appErr) && appErr.Message != "" {
				msg = appErr.Message
			}
			logger.WarnContext(ctx, "Pomodoro command rejected", "action", cmd.Action, "error", err)
			_ = sink.SendError(msg)
		}
	}
}
