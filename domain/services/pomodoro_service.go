package services

import (
	"context"

	"github.com/google/uuid"

	"study-tracker/domain/dto"
	"study-tracker/pkg/pomodoro"
)

// PomodoroSink receives what a session pushes to its client
type PomodoroSink interface {
	SendState(state pomodoro.State) error
	SendComplete(completion pomodoro.Completion) error
	// Close ปิด connection เมื่อมี session ใหม่ของ user เดียวกันมาแทน
	Close() error
}

type PomodoroSession interface {
	Handle(ctx context.Context, cmd dto.PomodoroCommand) error
	State() pomodoro.State
	Close()
}

// PomodoroService keeps one live session per user
type PomodoroService interface {
	Open(ctx context.Context, userID uuid.UUID, sink PomodoroSink) (PomodoroSession, error)
	ActiveSessions() int
}
